package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"nio/internal/config"
	"nio/internal/i18n"
	"nio/internal/logger"
	"nio/internal/notify"
	"nio/internal/router"
	"nio/internal/store"
)

// Options wires the home screen to its collaborators.
type Options struct {
	Store         *store.Store
	Conversations ConversationService
	Sender        Sender
	Auth          Authenticator
	Notify        *notify.Center
	Translator    i18n.Translator

	// Query is sent once as soon as the store is initialized.
	Query           string
	ScrollThreshold int
	CompactWidth    int
}

// Model is the home screen: sidebar, chat and composer.
type Model struct {
	store  *store.Store
	auth   Authenticator
	notify *notify.Center
	t      i18n.Translator
	log    *slog.Logger

	Sidebar  *Sidebar
	Chat     *ChatInterface
	Composer *ChatWrapper
	Help     help.Model

	Route        string
	focus        focusArea
	compactWidth int
	WindowWidth  int
	WindowHeight int

	changes     chan struct{}
	unsubscribe func()
}

func New(opts Options) *Model {
	if opts.ScrollThreshold <= 0 {
		opts.ScrollThreshold = config.DefaultScrollThreshold
	}
	if opts.CompactWidth <= 0 {
		opts.CompactWidth = config.DefaultCompactWidth
	}
	if opts.Notify == nil {
		opts.Notify = notify.NewCenter(false)
	}
	if opts.Translator == nil {
		opts.Translator = i18n.New("en")
	}

	m := &Model{
		store:        opts.Store,
		auth:         opts.Auth,
		notify:       opts.Notify,
		t:            opts.Translator,
		log:          logger.WithComponent("ui"),
		Sidebar:      NewSidebar(opts.Store, opts.Conversations, opts.Auth, opts.Notify, opts.Translator),
		Chat:         NewChatInterface(opts.ScrollThreshold),
		Composer:     NewChatWrapper(opts.Store, opts.Sender, opts.Notify, opts.Translator, opts.Query),
		Help:         help.New(),
		Route:        router.RouteHome,
		compactWidth: opts.CompactWidth,
		changes:      make(chan struct{}, 1),
	}
	m.unsubscribe = opts.Store.Subscribe(func(store.State) {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForChange(),
		m.checkAuth(),
		m.Sidebar.Init(),
		m.Composer.TextInput.Cursor.BlinkCmd(),
	)
}

// waitForChange delivers a StateChangedMsg after the next store update.
// Updates that arrive while one is queued are coalesced.
func (m *Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		<-changes
		return StateChangedMsg{}
	}
}

func (m *Model) checkAuth() tea.Cmd {
	if m.auth == nil {
		return func() tea.Msg { return authCheckedMsg{} }
	}
	auth := m.auth
	return func() tea.Msg {
		ok, err := auth.Check(context.Background())
		return authCheckedMsg{ok: ok, err: err}
	}
}

// Close detaches the model from the store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func NewProgram(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
}
