package conversation

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"nio/internal/db"
	"nio/internal/models"
	"nio/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "nio.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewService(conn, 100)
}

func seed(t *testing.T, s *Service, names ...string) []models.Conversation {
	t.Helper()
	var out []models.Conversation
	for _, name := range names {
		conv, err := s.Create(context.Background(), name, models.BaselineModel)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		out = append(out, conv)
	}
	return out
}

func TestRefreshListDispatchesHistory(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc, "Trip plan", "Recipe")
	st := store.New(models.BaselineModel, true)

	if err := svc.RefreshList(context.Background(), st); err != nil {
		t.Fatalf("RefreshList() error = %v", err)
	}
	if got := len(st.History()); got != 2 {
		t.Fatalf("len(History()) = %d, want 2", got)
	}
}

func TestRefreshListFailureKeepsPreviousList(t *testing.T) {
	svc := newTestService(t)
	st := store.New(models.BaselineModel, true)
	previous := []models.Conversation{{ID: 9, Name: "kept"}}
	st.Dispatch(store.SetHistory{History: previous})

	_ = svc.db.Close()
	if err := svc.RefreshList(context.Background(), st); err == nil {
		t.Fatalf("RefreshList() on closed db should fail")
	}
	if h := st.History(); len(h) != 1 || h[0].ID != 9 {
		t.Fatalf("History() = %+v, want previous list", h)
	}
}

func TestSetActiveLoadsMessages(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	conv := seed(t, svc, "Chat")[0]
	msg := models.Message{ID: "m1", Role: models.RoleUser, Content: "hello", CreatedAt: time.Now()}
	if err := svc.AppendMessage(ctx, conv.ID, msg); err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	st := store.New(models.BaselineModel, true)

	if err := svc.SetActive(ctx, st, conv.ID); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if st.Current() != conv.ID {
		t.Fatalf("Current() = %d, want %d", st.Current(), conv.ID)
	}
	if msgs := st.Messages(); len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Fatalf("Messages() = %+v", msgs)
	}

	if err := svc.SetActive(ctx, st, models.NewConversationID); err != nil {
		t.Fatalf("SetActive(new) error = %v", err)
	}
	if st.Current() != models.NewConversationID || len(st.Messages()) != 0 {
		t.Fatalf("SetActive(new) did not reset: current=%d messages=%d", st.Current(), len(st.Messages()))
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	convs := seed(t, svc, "Trip plan", "Recipe")
	st := store.New(models.BaselineModel, true)
	if err := svc.RefreshList(ctx, st); err != nil {
		t.Fatalf("RefreshList() error = %v", err)
	}

	if !svc.Delete(ctx, st, convs[0].ID) {
		t.Fatalf("Delete() = false, want true")
	}
	if st.Snapshot().HasConversation(convs[0].ID) {
		t.Fatalf("deleted conversation still in history")
	}
	if svc.Delete(ctx, st, convs[0].ID) {
		t.Fatalf("Delete() of missing conversation = true, want false")
	}
	if svc.Delete(ctx, st, models.NewConversationID) {
		t.Fatalf("Delete(-1) = true, want false")
	}
}

func TestCreateNamesFromFirstMessage(t *testing.T) {
	svc := newTestService(t)
	long := "a very long first message that keeps going well past the fifty rune limit of names"
	conv, err := svc.Create(context.Background(), long, models.BaselineModel)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len([]rune(conv.Name)) != nameLength+len("...") {
		t.Fatalf("Create() name = %q, want truncated", conv.Name)
	}

	conv, err = svc.Create(context.Background(), "   ", models.BaselineModel)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if conv.Name != "New chat" {
		t.Fatalf("Create() blank name = %q, want New chat", conv.Name)
	}
}

func TestDiscardRemovesWithoutDispatch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	convs := seed(t, svc, "Draft")

	if err := svc.Discard(ctx, convs[0].ID); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	st := store.New(models.BaselineModel, true)
	if err := svc.RefreshList(ctx, st); err != nil {
		t.Fatalf("RefreshList() error = %v", err)
	}
	if st.Snapshot().HasConversation(convs[0].ID) {
		t.Fatalf("discarded conversation still listed")
	}
	if err := svc.Discard(ctx, convs[0].ID); err == nil {
		t.Fatalf("Discard() of missing conversation error = nil")
	}
}
