package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nio/internal/i18n"
	"nio/internal/logger"
	"nio/internal/models"
	"nio/internal/notify"
	"nio/internal/store"
	"nio/internal/styles"
)

// deleteConfirm is either idle or pending on one conversation.
type deleteConfirm struct {
	target *models.Conversation
}

func (d *deleteConfirm) Request(c models.Conversation) {
	d.target = &c
}

func (d *deleteConfirm) Cancel() {
	d.target = nil
}

func (d *deleteConfirm) Pending() (models.Conversation, bool) {
	if d.target == nil {
		return models.Conversation{}, false
	}
	return *d.target, true
}

// Take returns the pending conversation and goes idle.
func (d *deleteConfirm) Take() (models.Conversation, bool) {
	c, ok := d.Pending()
	d.target = nil
	return c, ok
}

// Sidebar lists the conversation history.
type Sidebar struct {
	store  *store.Store
	convs  ConversationService
	auth   Authenticator
	notify *notify.Center
	t      i18n.Translator
	log    *slog.Logger

	Cursor     int
	confirm    deleteConfirm
	refreshing int
	minRefresh time.Duration
	Spinner    spinner.Model

	loginOpen bool
	login     textinput.Model

	compact bool
	width   int
	height  int
	now     func() time.Time
}

func NewSidebar(st *store.Store, convs ConversationService, auth Authenticator, center *notify.Center, t i18n.Translator) *Sidebar {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.RefreshActiveStyle

	ti := textinput.New()
	ti.Placeholder = t.T("login-prompt")
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256

	return &Sidebar{
		store:      st,
		convs:      convs,
		auth:       auth,
		notify:     center,
		t:          t,
		log:        logger.WithComponent("sidebar"),
		minRefresh: MinRefreshShown,
		Spinner:    sp,
		login:      ti,
		width:      SidebarWidth,
		now:        time.Now,
	}
}

// Init loads the history once on mount.
func (s *Sidebar) Init() tea.Cmd {
	return s.refresh(false)
}

func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Refreshing reports whether the refresh animation is visible.
func (s *Sidebar) Refreshing() bool {
	return s.refreshing > 0
}

// Modal reports whether a dialog owned by the sidebar is open.
func (s *Sidebar) Modal() bool {
	_, pending := s.confirm.Pending()
	return pending || s.loginOpen
}

func (s *Sidebar) refresh(animated bool) tea.Cmd {
	convs, dispatch, minShown := s.convs, s.store, s.minRefresh
	run := func() tea.Msg {
		start := time.Now()
		err := convs.RefreshList(context.Background(), dispatch)
		if animated {
			if wait := minShown - time.Since(start); wait > 0 {
				time.Sleep(wait)
			}
		}
		return refreshDoneMsg{err: err, animated: animated}
	}
	if !animated {
		return run
	}
	s.refreshing++
	return tea.Batch(run, s.Spinner.Tick)
}

// sync reconciles local state with a new store snapshot.
func (s *Sidebar) sync(st store.State) {
	if c, ok := s.confirm.Pending(); ok && !st.HasConversation(c.ID) {
		s.confirm.Cancel()
	}
	if s.Cursor >= len(st.History) {
		s.Cursor = max(len(st.History)-1, 0)
	}
}

func (s *Sidebar) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case refreshDoneMsg:
		if msg.animated && s.refreshing > 0 {
			s.refreshing--
		}
		if msg.err != nil {
			return s.notify.Error(s.t.T("conversation.refresh-failed"), s.t.T("conversation.refresh-failed-prompt"))
		}
		return nil

	case selectDoneMsg:
		if msg.err != nil {
			s.log.Error("select conversation", "id", msg.id, "error", msg.err)
			return s.notify.Error(s.t.T("conversation.refresh-failed"), msg.err.Error())
		}
		return nil

	case deleteDoneMsg:
		if msg.ok {
			return s.notify.Success(s.t.T("conversation.delete-success"), s.t.T("conversation.delete-success-prompt"))
		}
		return s.notify.Error(s.t.T("conversation.delete-failed"), s.t.T("conversation.delete-failed-prompt"))

	case loginDoneMsg:
		if msg.err != nil {
			s.log.Warn("login", "error", msg.err)
			return s.notify.Error(s.t.T("login-failed"), msg.err.Error())
		}
		s.store.Dispatch(store.SetAuth{Authenticated: true, Init: true})
		return tea.Batch(
			s.notify.Success(s.t.T("login-success"), ""),
			s.refresh(false),
		)

	case spinner.TickMsg:
		if !s.Refreshing() {
			return nil
		}
		var cmd tea.Cmd
		s.Spinner, cmd = s.Spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if s.loginOpen {
			return s.updateLogin(msg)
		}
		if _, ok := s.confirm.Pending(); ok {
			return s.updateConfirm(msg)
		}
		return s.updateList(msg)
	}
	return nil
}

func (s *Sidebar) updateList(msg tea.KeyMsg) tea.Cmd {
	if !s.store.Authenticated() {
		if key.Matches(msg, keys.Login) {
			s.loginOpen = true
			s.login.SetValue("")
			return s.login.Focus()
		}
		if key.Matches(msg, keys.New) {
			return s.Select(models.NewConversationID)
		}
		return nil
	}

	history := s.store.History()
	switch {
	case key.Matches(msg, keys.Up):
		if len(history) > 0 {
			s.Cursor = (s.Cursor - 1 + len(history)) % len(history)
		}
	case key.Matches(msg, keys.Down):
		if len(history) > 0 {
			s.Cursor = (s.Cursor + 1) % len(history)
		}
	case key.Matches(msg, keys.Select):
		if s.Cursor < len(history) {
			return s.Select(history[s.Cursor].ID)
		}
	case key.Matches(msg, keys.New):
		return s.Select(models.NewConversationID)
	case key.Matches(msg, keys.Refresh):
		return s.refresh(true)
	case key.Matches(msg, keys.Delete):
		if s.Cursor < len(history) {
			s.confirm.Request(history[s.Cursor])
		}
	}
	return nil
}

// Select activates a conversation and closes the menu in compact layouts.
func (s *Sidebar) Select(id int64) tea.Cmd {
	if s.compact {
		s.store.Dispatch(store.SetMenu{Open: false})
	}
	convs, dispatch := s.convs, s.store
	return func() tea.Msg {
		return selectDoneMsg{id: id, err: convs.SetActive(context.Background(), dispatch, id)}
	}
}

func (s *Sidebar) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Confirm):
		return s.ConfirmDelete()
	case key.Matches(msg, keys.Cancel):
		s.confirm.Cancel()
	}
	return nil
}

// ConfirmDelete deletes the pending conversation. The dialog closes
// whatever the outcome.
func (s *Sidebar) ConfirmDelete() tea.Cmd {
	conv, ok := s.confirm.Take()
	if !ok {
		return nil
	}
	convs, dispatch := s.convs, s.store
	return func() tea.Msg {
		return deleteDoneMsg{conv: conv, ok: convs.Delete(context.Background(), dispatch, conv.ID)}
	}
}

func (s *Sidebar) updateLogin(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		s.loginOpen = false
		s.login.Blur()
		return nil
	case tea.KeyEnter:
		token := strings.TrimSpace(s.login.Value())
		if token == "" {
			return nil
		}
		s.loginOpen = false
		s.login.Blur()
		s.login.SetValue("")
		auth := s.auth
		return func() tea.Msg {
			return loginDoneMsg{err: auth.Login(context.Background(), token)}
		}
	}
	var cmd tea.Cmd
	s.login, cmd = s.login.Update(msg)
	return cmd
}

func (s *Sidebar) View(focused bool) string {
	st := s.store.Snapshot()
	inner := max(s.width-4, 8)

	header := styles.TitleStyle.Render("NIO")
	if s.Refreshing() {
		header += " " + s.Spinner.View()
	}

	var body string
	switch {
	case !st.Authenticated:
		body = lipgloss.JoinVertical(lipgloss.Left,
			styles.EmptyStyle.Render(s.t.T("login-require")),
			styles.ButtonStyle.Render("[l] "+s.t.T("login")),
		)
	case len(st.History) == 0:
		body = styles.EmptyStyle.Render(s.t.T("conversation.empty"))
	default:
		body = s.renderList(st, inner)
	}

	style := styles.SidebarStyle
	if focused {
		style = styles.SidebarFocusedStyle
	}
	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body)
	return style.Width(s.width - 1).Height(max(s.height, 1)).Render(content)
}

func (s *Sidebar) renderList(st store.State, width int) string {
	now := s.now()
	visible := max(s.height/2-2, 1)
	start := 0
	if s.Cursor >= visible {
		start = s.Cursor - visible + 1
	}
	end := min(start+visible, len(st.History))

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := st.History[i]
		id := fmt.Sprintf("#%d", c.ID)
		title := TruncateWidth(ConversationTitle(c), width-len(id)-3)
		meta := styles.ConversationIDStyle.Render(id + " · " + RelativeTime(c.UpdatedAt, now))

		style := styles.ConversationStyle
		switch {
		case i == s.Cursor:
			style = styles.ConversationSelected
		case c.ID == st.Current:
			style = styles.ConversationActive
		}
		rows = append(rows, style.Width(width).Render(title)+"\n"+styles.ConversationStyle.Render(meta))
	}
	return strings.Join(rows, "\n")
}

// ModalView renders the delete confirmation or login prompt, if open.
func (s *Sidebar) ModalView() string {
	if s.loginOpen {
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.ModalTitleStyle.Render(s.t.T("login-title")),
			s.login.View(),
			styles.HintStyle.PaddingTop(1).Render("enter: login • esc: cancel"),
		)
	}
	c, ok := s.confirm.Pending()
	if !ok {
		return ""
	}
	description := s.t.T("conversation.remove-description") + DeleteTarget(c) + s.t.T("end")
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.ButtonStyle.Render("[n] "+s.t.T("conversation.cancel")),
		"  ",
		styles.DangerButtonStyle.Render("[y] "+s.t.T("conversation.delete")),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(s.t.T("conversation.remove-title")),
		lipgloss.NewStyle().Width(ModalWidth-6).Render(description),
		"",
		buttons,
	)
}
