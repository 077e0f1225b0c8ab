package conversation

import (
	"context"
	"testing"
)

func TestMemoryStorageCopiesRecords(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	rec := NewRecord(7)
	rec.History = []int64{1, 2}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.History[0] = 99

	loaded, err := s.Load(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.History[0] != 1 {
		t.Fatalf("stored history aliased the caller's slice: %v", loaded.History)
	}

	if err = s.Delete(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if loaded, _ = s.Load(ctx, 7); loaded != nil {
		t.Fatalf("record survived delete: %+v", loaded)
	}
}

func TestEventIsRestart(t *testing.T) {
	cases := map[string]bool{
		"/start":                true,
		"  /start  ":            true,
		"/start@ImpressionsBot": true,
		"/start promo":          true,
		"/started":              false,
		"start":                 false,
		"":                      false,
	}
	for text, want := range cases {
		ev := Event{Kind: TextInput, Text: text}
		if got := ev.IsRestart(); got != want {
			t.Errorf("IsRestart(%q) = %v, want %v", text, got, want)
		}
	}
	if (Event{Kind: Selection, Text: "/start"}).IsRestart() {
		t.Fatal("selection treated as restart")
	}
}
