package manager

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"nio/internal/i18n"
	"nio/internal/logger"
	"nio/internal/models"
	"nio/internal/store"
)

type fakeCompleter struct {
	mu      sync.Mutex
	chunks  []string
	err     error
	release chan struct{}
	reqs    []Request
}

func (f *fakeCompleter) Stream(ctx context.Context, req Request, onDelta func(string)) (string, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	var sb strings.Builder
	for _, c := range f.chunks {
		sb.WriteString(c)
		onDelta(sb.String())
	}
	return sb.String(), f.err
}

type fakePersister struct {
	nextID    int64
	created   []string
	appended  map[int64][]models.Message
	updated   map[string]string
	refreshes int
	createErr error
	appendErr error
	discarded []int64
}

func newFakePersister() *fakePersister {
	return &fakePersister{nextID: 1, appended: map[int64][]models.Message{}, updated: map[string]string{}}
}

func (p *fakePersister) Create(_ context.Context, first, modelID string) (models.Conversation, error) {
	if p.createErr != nil {
		return models.Conversation{}, p.createErr
	}
	p.created = append(p.created, first)
	id := p.nextID
	p.nextID++
	return models.Conversation{ID: id, Name: first, Model: modelID}, nil
}

func (p *fakePersister) AppendMessage(_ context.Context, id int64, msg models.Message) error {
	if p.appendErr != nil {
		return p.appendErr
	}
	p.appended[id] = append(p.appended[id], msg)
	return nil
}

func (p *fakePersister) UpdateMessage(_ context.Context, id, content string) error {
	p.updated[id] = content
	return nil
}

func (p *fakePersister) RefreshList(context.Context, store.Dispatcher) error {
	p.refreshes++
	return nil
}

func (p *fakePersister) Discard(_ context.Context, id int64) error {
	p.discarded = append(p.discarded, id)
	return nil
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestManager(c Completer, p Persister) (*Manager, *store.Store) {
	st := store.New(models.BaselineModel, true)
	m := New(st, p, c, staticToken("personal"), "shared")
	m.SetDispatch(st)
	return m, st
}

var tr = i18n.New("en")

func TestSendRequiresDispatch(t *testing.T) {
	st := store.New(models.BaselineModel, true)
	m := New(st, nil, &fakeCompleter{}, nil, "")
	if m.Send(context.Background(), tr, false, SendProps{Message: "hi", Model: models.BaselineModel}) {
		t.Fatalf("Send() without dispatch = true")
	}
}

func TestSendRejectsBlankAndUnknownModel(t *testing.T) {
	c := &fakeCompleter{}
	m, st := newTestManager(c, nil)

	if m.Send(context.Background(), tr, false, SendProps{Message: "  \n ", Model: models.BaselineModel}) {
		t.Fatalf("Send(blank) = true")
	}
	if m.Send(context.Background(), tr, true, SendProps{Message: "hi", Model: "nope"}) {
		t.Fatalf("Send(unknown model) = true")
	}
	if m.Send(context.Background(), tr, false, SendProps{Message: "hi", Model: "gpt-4"}) {
		t.Fatalf("Send(anonymous gpt-4) = true")
	}
	if len(st.Messages()) != 0 || len(c.reqs) != 0 {
		t.Fatalf("rejected sends must not touch store or completer")
	}
}

func TestAnonymousRestrictedModelIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(io.Discard) })
	m, _ := newTestManager(&fakeCompleter{}, nil)

	if m.Send(context.Background(), tr, false, SendProps{Message: "hi", Model: "gpt-4"}) {
		t.Fatalf("Send(anonymous gpt-4) = true")
	}
	out := buf.String()
	if !strings.Contains(out, "anonymous send with restricted model") || !strings.Contains(out, "model=gpt-4") {
		t.Fatalf("log = %q, want restricted model warning", out)
	}
}

func TestAnonymousSendStreamsWithoutPersisting(t *testing.T) {
	c := &fakeCompleter{chunks: []string{"Hel", "lo!"}}
	p := newFakePersister()
	m, st := newTestManager(c, p)

	if !m.Send(context.Background(), tr, false, SendProps{Message: " Hello ", Model: models.BaselineModel, Web: true}) {
		t.Fatalf("Send() = false")
	}
	m.Wait()

	msgs := st.Messages()
	if len(msgs) != 2 || msgs[0].Content != "Hello" || msgs[1].Content != "Hello!" {
		t.Fatalf("Messages() = %+v", msgs)
	}
	if st.Current() != models.NewConversationID {
		t.Fatalf("anonymous send created conversation %d", st.Current())
	}
	if len(p.created) != 0 || len(p.appended) != 0 {
		t.Fatalf("anonymous send persisted data")
	}
	if req := c.reqs[0]; req.APIKey != "shared" || !req.Web || req.Model != models.BaselineModel {
		t.Fatalf("request = %+v", req)
	}
	if m.Busy() {
		t.Fatalf("Busy() after completion")
	}
}

func TestAuthenticatedSendCreatesConversation(t *testing.T) {
	c := &fakeCompleter{chunks: []string{"Rust is a language."}}
	p := newFakePersister()
	m, st := newTestManager(c, p)

	if !m.Send(context.Background(), tr, true, SendProps{Message: "What is Rust", Model: "gpt-4"}) {
		t.Fatalf("Send() = false")
	}
	m.Wait()

	if st.Current() != 1 {
		t.Fatalf("Current() = %d, want 1", st.Current())
	}
	if len(p.created) != 1 || p.created[0] != "What is Rust" {
		t.Fatalf("created = %v", p.created)
	}
	if len(p.appended[1]) != 2 {
		t.Fatalf("appended = %+v, want user + reply", p.appended[1])
	}
	replyID := p.appended[1][1].ID
	if p.updated[replyID] != "Rust is a language." {
		t.Fatalf("persisted reply = %q", p.updated[replyID])
	}
	if p.refreshes != 1 {
		t.Fatalf("refreshes = %d, want 1", p.refreshes)
	}
	if c.reqs[0].APIKey != "personal" {
		t.Fatalf("APIKey = %q, want personal", c.reqs[0].APIKey)
	}
}

func TestSendRefusedWhileInFlight(t *testing.T) {
	c := &fakeCompleter{chunks: []string{"ok"}, release: make(chan struct{})}
	m, _ := newTestManager(c, nil)

	if !m.Send(context.Background(), tr, false, SendProps{Message: "first", Model: models.BaselineModel}) {
		t.Fatalf("first Send() = false")
	}
	if m.Send(context.Background(), tr, false, SendProps{Message: "second", Model: models.BaselineModel}) {
		t.Fatalf("second Send() while busy = true")
	}
	close(c.release)
	m.Wait()

	if !m.Send(context.Background(), tr, false, SendProps{Message: "third", Model: models.BaselineModel}) {
		t.Fatalf("Send() after completion = false")
	}
	m.Wait()
}

func TestStreamErrorIsWrittenIntoReply(t *testing.T) {
	c := &fakeCompleter{err: errors.New("boom")}
	m, st := newTestManager(c, nil)

	if !m.Send(context.Background(), tr, false, SendProps{Message: "hi", Model: models.BaselineModel}) {
		t.Fatalf("Send() = false")
	}
	m.Wait()

	msgs := st.Messages()
	if got := msgs[len(msgs)-1].Content; got != "Request failed: boom" {
		t.Fatalf("reply = %q", got)
	}
}

func TestCreateFailureRejectsSend(t *testing.T) {
	p := newFakePersister()
	p.createErr = errors.New("disk full")
	m, st := newTestManager(&fakeCompleter{}, p)

	if m.Send(context.Background(), tr, true, SendProps{Message: "hi", Model: "gpt-4"}) {
		t.Fatalf("Send() = true, want false")
	}
	if len(st.Messages()) != 0 || m.Busy() {
		t.Fatalf("failed send left state behind")
	}
}

func TestAppendFailureDiscardsCreatedConversation(t *testing.T) {
	p := newFakePersister()
	p.appendErr = errors.New("disk full")
	m, st := newTestManager(&fakeCompleter{}, p)

	if m.Send(context.Background(), tr, true, SendProps{Message: "hi", Model: "gpt-4"}) {
		t.Fatalf("Send() = true, want false")
	}
	if len(p.created) != 1 {
		t.Fatalf("created = %v, want one conversation", p.created)
	}
	if len(p.discarded) != 1 || p.discarded[0] != 1 {
		t.Fatalf("discarded = %v, want [1]", p.discarded)
	}
	if st.Current() != models.NewConversationID || len(st.Messages()) != 0 || m.Busy() {
		t.Fatalf("failed send left state behind")
	}
}

func TestAppendFailureKeepsExistingConversation(t *testing.T) {
	p := newFakePersister()
	p.appendErr = errors.New("disk full")
	m, st := newTestManager(&fakeCompleter{}, p)
	st.Dispatch(store.SetCurrent{ID: 7})

	if m.Send(context.Background(), tr, true, SendProps{Message: "hi", Model: "gpt-4"}) {
		t.Fatalf("Send() = true, want false")
	}
	if len(p.discarded) != 0 {
		t.Fatalf("discarded = %v, want none", p.discarded)
	}
}

func TestBuildHistorySkipsEmptyReplies(t *testing.T) {
	history := BuildHistory([]models.Message{
		{Role: models.RoleUser, Content: "q"},
		{Role: models.RoleAssistant, Content: ""},
		{Role: models.RoleAssistant, Content: "a"},
	})
	if len(history) != 3 {
		t.Fatalf("len(BuildHistory()) = %d, want 3", len(history))
	}
}
