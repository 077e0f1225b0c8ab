package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"ImpressionsBot/bot/conversation"
	"ImpressionsBot/entity"
)

type fakeHandler struct {
	records map[int64]*conversation.Record
	resets  []int64
	shots   map[string][]byte
}

func (f *fakeHandler) AuthenticateByToken(token string) (string, error) {
	if token != "secret" {
		return "", fmt.Errorf("unknown token")
	}
	return "operator", nil
}

func (f *fakeHandler) Conversation(_ context.Context, chatID int64) (*conversation.Record, error) {
	return f.records[chatID], nil
}

func (f *fakeHandler) ResetConversation(_ context.Context, chatID int64) error {
	f.resets = append(f.resets, chatID)
	delete(f.records, chatID)
	return nil
}

func (f *fakeHandler) OrderScreenshot(_ context.Context, number string) (entity.ScreenshotMeta, io.ReadCloser, error) {
	data, ok := f.shots[number]
	if !ok {
		return entity.ScreenshotMeta{}, nil, entity.ErrNotFound
	}
	return entity.ScreenshotMeta{OrderNumber: number, ContentType: "image/jpeg"}, io.NopCloser(bytes.NewReader(data)), nil
}

func newTestRouter() (http.Handler, *fakeHandler) {
	rec := conversation.NewRecord(42)
	rec.State = conversation.StateMainMenu
	rec.Language = conversation.LanguageEn
	h := &fakeHandler{
		records: map[int64]*conversation.Record{42: rec},
		shots:   map[string][]byte{"ORD-1": {0xff, 0xd8, 0xff}},
	}
	return NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)), h), h
}

func do(router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthIsOpen(t *testing.T) {
	router, _ := newTestRouter()
	if w := do(router, http.MethodGet, "/api/v1/health", ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w := do(router, http.MethodGet, "/metrics", ""); w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
}

func TestConversationRequiresToken(t *testing.T) {
	router, _ := newTestRouter()
	for _, token := range []string{"", "wrong"} {
		if w := do(router, http.MethodGet, "/api/v1/conversation/42", token); w.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: status = %d", token, w.Code)
		}
	}
}

func TestGetConversation(t *testing.T) {
	router, _ := newTestRouter()

	w := do(router, http.MethodGet, "/api/v1/conversation/42", "secret")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var body struct {
		Success bool                `json:"success"`
		Data    conversation.Record `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.Data.ChatID != 42 || body.Data.State != conversation.StateMainMenu {
		t.Fatalf("body = %+v", body)
	}

	if w = do(router, http.MethodGet, "/api/v1/conversation/7", "secret"); w.Code != http.StatusNotFound {
		t.Fatalf("missing record: status = %d", w.Code)
	}
	if w = do(router, http.MethodGet, "/api/v1/conversation/abc", "secret"); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: status = %d", w.Code)
	}
}

func TestResetConversation(t *testing.T) {
	router, h := newTestRouter()

	if w := do(router, http.MethodGet, "/api/v1/conversation/42/reset", "secret"); w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET reset: status = %d", w.Code)
	}

	w := do(router, http.MethodPost, "/api/v1/conversation/42/reset", "secret")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(h.resets) != 1 || h.resets[0] != 42 {
		t.Fatalf("resets = %v", h.resets)
	}
	if w = do(router, http.MethodGet, "/api/v1/conversation/42", "secret"); w.Code != http.StatusNotFound {
		t.Fatalf("record survived reset: status = %d", w.Code)
	}
}

func TestOrderScreenshot(t *testing.T) {
	router, _ := newTestRouter()

	w := do(router, http.MethodGet, "/api/v1/order/ORD-1/screenshot", "secret")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("content type = %q", ct)
	}
	if !bytes.Equal(w.Body.Bytes(), []byte{0xff, 0xd8, 0xff}) {
		t.Fatalf("body = %v", w.Body.Bytes())
	}

	if w = do(router, http.MethodGet, "/api/v1/order/ORD-2/screenshot", "secret"); w.Code != http.StatusNotFound {
		t.Fatalf("missing screenshot: status = %d", w.Code)
	}
}
