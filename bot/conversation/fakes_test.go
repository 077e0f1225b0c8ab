package conversation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"ImpressionsBot/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type editCall struct {
	messageID int64
	screen    Screen
}

type fakeTransport struct {
	nextID   int64
	sent     []Screen
	edits    []editCall
	deleted  []int64
	batches  [][]int64
	answered []string
	media    map[string][]byte
	// lastScreen is the message most recently sent or edited by the bot.
	lastScreen int64

	rejectBatch  bool
	rejectDelete bool
	rejectEdit   map[int64]bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		nextID:     1000,
		media:      map[string][]byte{},
		rejectEdit: map[int64]bool{},
	}
}

func (f *fakeTransport) SendMessage(_ context.Context, _ int64, screen Screen) (int64, error) {
	id := f.nextID
	f.nextID++
	f.sent = append(f.sent, screen)
	f.lastScreen = id
	return id, nil
}

func (f *fakeTransport) EditMessage(_ context.Context, _ int64, messageID int64, screen Screen) (int64, error) {
	if f.rejectEdit[messageID] {
		return 0, fmt.Errorf("message to edit not found: %w", ErrRejected)
	}
	f.edits = append(f.edits, editCall{messageID: messageID, screen: screen})
	f.lastScreen = messageID
	return messageID, nil
}

func (f *fakeTransport) DeleteMessage(_ context.Context, _ int64, messageID int64) (bool, error) {
	if f.rejectDelete {
		return false, fmt.Errorf("message to delete not found: %w", ErrRejected)
	}
	f.deleted = append(f.deleted, messageID)
	return true, nil
}

func (f *fakeTransport) DeleteMessages(_ context.Context, _ int64, messageIDs []int64) (bool, error) {
	if f.rejectBatch {
		return false, fmt.Errorf("messages to delete not found: %w", ErrRejected)
	}
	f.batches = append(f.batches, append([]int64{}, messageIDs...))
	return true, nil
}

func (f *fakeTransport) DownloadMedia(_ context.Context, fileRef string) ([]byte, error) {
	data, ok := f.media[fileRef]
	if !ok {
		return nil, fmt.Errorf("file %s not found", fileRef)
	}
	return data, nil
}

func (f *fakeTransport) AnswerSelection(_ context.Context, selectionID string) error {
	f.answered = append(f.answered, selectionID)
	return nil
}

func (f *fakeTransport) lastText() string {
	var last string
	if n := len(f.sent); n > 0 {
		last = f.sent[n-1].Text
	}
	return last
}

type fakeStore struct {
	impressions    []entity.Impression
	impressionsErr error
	faq            []entity.FaqItem
	certificates   map[string]string

	orders       []*entity.Order
	applications []*entity.SupportApplication
	activations  []entity.Activation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		impressions: []entity.Impression{
			{ID: 7, Name: "Surfing lesson", Price: "$50", URL: "https://example.com/surf"},
			{ID: 9, Name: "Sunset dinner", Price: "$120", URL: "https://example.com/dinner"},
		},
		faq: []entity.FaqItem{
			{Question: "How do I pay?", URL: "https://example.com/faq/pay"},
		},
		certificates: map[string]string{"GOOD-1": "Surfing lesson"},
	}
}

func (s *fakeStore) Impressions(_ context.Context, _, _ string) ([]entity.Impression, error) {
	return s.impressions, s.impressionsErr
}

func (s *fakeStore) Impression(_ context.Context, id int64, _ string) (*entity.Impression, error) {
	for _, item := range s.impressions {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (s *fakeStore) PolicyURL(_ context.Context, _ string) (string, error) {
	return "https://example.com/policy", nil
}

func (s *fakeStore) PaymentDetails(_ context.Context, _ string) (string, error) {
	return "Card 0000 1111", nil
}

func (s *fakeStore) SelfDeliveryPoint(_ context.Context, _ string) (*entity.DeliveryPoint, error) {
	return &entity.DeliveryPoint{Address: "Bukit, 1", OpeningHours: "10-18"}, nil
}

func (s *fakeStore) FaqDetails(_ context.Context, _ string) ([]entity.FaqItem, error) {
	return s.faq, nil
}

func (s *fakeStore) CreateOrder(_ context.Context, order *entity.Order) error {
	s.orders = append(s.orders, order)
	return nil
}

func (s *fakeStore) ActivateCertificate(_ context.Context, req entity.Activation) (*entity.ActivationResult, error) {
	s.activations = append(s.activations, req)
	name, ok := s.certificates[req.CertificateID]
	return &entity.ActivationResult{Availability: ok, ImpressionName: name}, nil
}

func (s *fakeStore) CreateSupportApplication(_ context.Context, app *entity.SupportApplication) error {
	s.applications = append(s.applications, app)
	return nil
}

// harness drives one chat through the dispatcher.
type harness struct {
	t          *testing.T
	chatID     int64
	nextMsg    int64
	transport  *fakeTransport
	store      *fakeStore
	storage    *MemoryStorage
	dispatcher *Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	transport := newFakeTransport()
	store := newFakeStore()
	storage := NewMemoryStorage()
	log := discardLogger()

	registry := NewRegistry(NewFlow(transport, store, log))
	return &harness{
		t:          t,
		chatID:     42,
		nextMsg:    1,
		transport:  transport,
		store:      store,
		storage:    storage,
		dispatcher: NewDispatcher(registry, storage, NewChatLocker(), transport, log, true),
	}
}

func (h *harness) dispatch(ev Event) {
	h.t.Helper()
	if err := h.dispatcher.Dispatch(context.Background(), ev); err != nil {
		h.t.Fatalf("dispatch %+v: %v", ev, err)
	}
}

// text sends a user message and returns its id.
func (h *harness) text(text string) int64 {
	h.t.Helper()
	id := h.nextMsg
	h.nextMsg++
	h.dispatch(Event{Kind: TextInput, ChatID: h.chatID, Username: "jane", MessageID: id, Text: text})
	return id
}

func (h *harness) photo(ref string) int64 {
	h.t.Helper()
	id := h.nextMsg
	h.nextMsg++
	h.dispatch(Event{Kind: TextInput, ChatID: h.chatID, Username: "jane", MessageID: id, PhotoRef: ref})
	return id
}

// press taps a button on the bot's latest screen.
func (h *harness) press(data string) {
	h.t.Helper()
	h.dispatch(Event{
		Kind:        Selection,
		ChatID:      h.chatID,
		Username:    "jane",
		MessageID:   h.transport.lastScreen,
		Data:        data,
		SelectionID: "q-" + data,
	})
}

func (h *harness) record() *Record {
	h.t.Helper()
	rec, err := h.storage.Load(context.Background(), h.chatID)
	if err != nil {
		h.t.Fatalf("load record: %v", err)
	}
	if rec == nil {
		h.t.Fatalf("no record for chat %d", h.chatID)
	}
	return rec
}

func (h *harness) expectState(want State) {
	h.t.Helper()
	if got := h.record().State; got != want {
		h.t.Fatalf("state = %s, want %s", got, want)
	}
}
