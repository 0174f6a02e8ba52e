package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"nio/internal/i18n"
	"nio/internal/manager"
	"nio/internal/models"
	"nio/internal/notify"
	"nio/internal/store"
)

type fakeConversations struct {
	mu         sync.Mutex
	history    []models.Conversation
	messages   map[int64][]models.Message
	refreshErr error
	deleteOK   bool
	refreshes  int
	activated  []int64
	deleted    []int64
}

func (f *fakeConversations) RefreshList(_ context.Context, d store.Dispatcher) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	if f.refreshErr != nil {
		return f.refreshErr
	}
	d.Dispatch(store.SetHistory{History: append([]models.Conversation(nil), f.history...)})
	return nil
}

func (f *fakeConversations) SetActive(_ context.Context, d store.Dispatcher, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activated = append(f.activated, id)
	d.Dispatch(store.SetCurrent{ID: id})
	d.Dispatch(store.SetMessages{Messages: f.messages[id]})
	return nil
}

func (f *fakeConversations) Delete(_ context.Context, d store.Dispatcher, id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if !f.deleteOK {
		return false
	}
	d.Dispatch(store.RemoveConversation{ID: id})
	return true
}

type fakeSender struct {
	mu       sync.Mutex
	result   bool
	calls    []manager.SendProps
	auth     []bool
	dispatch store.Dispatcher
}

func (f *fakeSender) SetDispatch(d store.Dispatcher) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dispatch = d
}

func (f *fakeSender) Send(_ context.Context, _ i18n.Translator, authenticated bool, props manager.SendProps) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, props)
	f.auth = append(f.auth, authenticated)
	return f.result
}

func (f *fakeSender) Calls() []manager.SendProps {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]manager.SendProps(nil), f.calls...)
}

type fakeAuth struct {
	mu     sync.Mutex
	ok     bool
	err    error
	logins []string
}

func (f *fakeAuth) Check(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ok, f.err
}

func (f *fakeAuth) Login(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, token)
	if f.err != nil {
		return f.err
	}
	f.ok = true
	return nil
}

type harness struct {
	t       *testing.T
	m       *Model
	store   *store.Store
	convs   *fakeConversations
	sender  *fakeSender
	auth    *fakeAuth
	notify  *notify.Center
	tr      i18n.Translator
	timeout time.Duration
}

type harnessOpts struct {
	width   int
	auth    bool
	query   string
	model   string
	history []models.Conversation
}

func newHarness(t *testing.T, o harnessOpts) *harness {
	t.Helper()
	if o.width == 0 {
		o.width = 120
	}
	if o.model == "" {
		o.model = models.BaselineModel
	}
	h := &harness{
		t:       t,
		store:   store.New(o.model, true),
		convs:   &fakeConversations{history: o.history, messages: map[int64][]models.Message{}},
		sender:  &fakeSender{result: true},
		auth:    &fakeAuth{ok: o.auth},
		notify:  notify.NewCenter(false),
		tr:      i18n.New("en"),
		timeout: 150 * time.Millisecond,
	}
	h.m = New(Options{
		Store:         h.store,
		Conversations: h.convs,
		Sender:        h.sender,
		Auth:          h.auth,
		Notify:        h.notify,
		Translator:    h.tr,
		Query:         o.query,
	})
	h.m.Sidebar.minRefresh = 10 * time.Millisecond
	t.Cleanup(h.m.Close)

	h.m.Update(tea.WindowSizeMsg{Width: o.width, Height: 40})
	return h
}

// start runs the startup commands to completion.
func (h *harness) start() {
	h.drive(h.m.Init())
	h.settle()
}

func (h *harness) press(msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		_, cmd := h.m.Update(msg)
		h.drive(cmd)
	}
	h.settle()
}

// settle applies store changes that arrived asynchronously.
func (h *harness) settle() {
	h.drive(h.m.sync())
}

// drive executes cmd and feeds the resulting messages back into the model
// until nothing is left. Timer driven messages are dropped.
func (h *harness) drive(cmd tea.Cmd) {
	queue := execCmd(cmd, h.timeout)
	for i := 0; len(queue) > 0 && i < 100; i++ {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case StateChangedMsg, spinner.TickMsg, cursor.BlinkMsg, notify.ExpireMsg, scrollFrameMsg:
			continue
		}
		_, next := h.m.Update(msg)
		queue = append(queue, execCmd(next, h.timeout)...)
	}
}

func execCmd(cmd tea.Cmd, timeout time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		switch msg := msg.(type) {
		case nil:
			return nil
		case tea.BatchMsg:
			results := make([][]tea.Msg, len(msg))
			var wg sync.WaitGroup
			for i, c := range msg {
				wg.Add(1)
				go func() {
					defer wg.Done()
					results[i] = execCmd(c, timeout)
				}()
			}
			wg.Wait()
			var out []tea.Msg
			for _, r := range results {
				out = append(out, r...)
			}
			return out
		default:
			return []tea.Msg{msg}
		}
	case <-time.After(timeout):
		return nil
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}
