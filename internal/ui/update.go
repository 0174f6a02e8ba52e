package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"nio/internal/notify"
	"nio/internal/router"
	"nio/internal/store"
)

const footerHeight = 3

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowWidth = msg.Width
		m.WindowHeight = msg.Height
		m.Help.Width = msg.Width
		m.Sidebar.compact = m.compact()
		m.layout()
		return m, nil

	case StateChangedMsg:
		return m, tea.Batch(m.waitForChange(), m.sync())

	case authCheckedMsg:
		if msg.err != nil {
			m.log.Error("auth check", "error", msg.err)
		}
		m.store.Dispatch(store.SetAuth{Authenticated: msg.ok && msg.err == nil, Init: true})
		return m, m.sync()

	case notify.ExpireMsg:
		m.notify.Expire(msg.ID)
		return m, nil

	case router.NavigateMsg:
		if router.Known(msg.Route) {
			m.Route = msg.Route
		} else {
			m.log.Warn("unknown route", "route", msg.Route)
		}
		return m, nil

	case refreshDoneMsg, selectDoneMsg, deleteDoneMsg, loginDoneMsg:
		cmd := m.Sidebar.Update(msg)
		return m, tea.Batch(cmd, m.sync())

	case sendResultMsg, fileLoadedMsg:
		cmd := m.Composer.Update(msg)
		m.layout()
		return m, cmd

	case scrollFrameMsg, tea.MouseMsg:
		return m, m.Chat.Update(msg)

	case spinner.TickMsg:
		return m, tea.Batch(m.Sidebar.Update(msg), m.Chat.Update(msg))

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.layout()
		return m, cmd
	}

	return m, m.Composer.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Quit) {
		return tea.Quit
	}

	if m.Route == router.RouteGenerate {
		if key.Matches(msg, keys.Back) {
			m.Route = router.RouteHome
		}
		return nil
	}

	if m.Sidebar.Modal() {
		return tea.Batch(m.Sidebar.Update(msg), m.sync())
	}
	if m.Composer.Modal() {
		return m.Composer.Update(msg)
	}

	switch {
	case key.Matches(msg, keys.Focus):
		m.toggleFocus()
		return nil
	case key.Matches(msg, keys.PageUp, keys.PageDown, keys.Bottom):
		return m.Chat.Update(msg)
	case key.Matches(msg, keys.Web, keys.Model):
		return m.Composer.Update(msg)
	case msg.Type == tea.KeyCtrlN:
		m.setFocus(focusComposer)
		return m.Sidebar.Select(-1)
	}

	if m.sidebarFocused() {
		if key.Matches(msg, keys.Back) {
			m.setFocus(focusComposer)
			return nil
		}
		leaving := key.Matches(msg, keys.Select, keys.New) && m.store.Authenticated()
		cmd := m.Sidebar.Update(msg)
		if leaving {
			m.setFocus(focusComposer)
		}
		return tea.Batch(cmd, m.sync())
	}
	return m.Composer.Update(msg)
}

// sync pushes the latest store snapshot into the sub-models.
func (m *Model) sync() tea.Cmd {
	st := m.store.Snapshot()
	m.Sidebar.sync(st)

	wasWaiting := m.Chat.Waiting()
	m.Chat.SetMessages(st.Messages)

	var cmds []tea.Cmd
	if m.Chat.Waiting() && !wasWaiting {
		cmds = append(cmds, m.Chat.Spinner.Tick)
	}
	if m.compact() {
		m.applyFocus(st.MenuOpen)
	}
	cmds = append(cmds, m.Composer.sync(st))
	m.layout()
	return tea.Batch(cmds...)
}

func (m *Model) compact() bool {
	return m.WindowWidth > 0 && m.WindowWidth < m.compactWidth
}

func (m *Model) sidebarFocused() bool {
	if m.compact() {
		return m.store.MenuOpen()
	}
	return m.focus == focusSidebar
}

func (m *Model) toggleFocus() {
	if m.compact() {
		open := !m.store.MenuOpen()
		m.store.Dispatch(store.SetMenu{Open: open})
		m.applyFocus(open)
		return
	}
	if m.focus == focusSidebar {
		m.setFocus(focusComposer)
	} else {
		m.setFocus(focusSidebar)
	}
}

func (m *Model) setFocus(f focusArea) {
	if m.compact() && f == focusComposer && m.store.MenuOpen() {
		m.store.Dispatch(store.SetMenu{Open: false})
	}
	m.applyFocus(f == focusSidebar)
}

func (m *Model) applyFocus(sidebar bool) {
	if sidebar {
		m.focus = focusSidebar
		m.Composer.TextInput.Blur()
		return
	}
	m.focus = focusComposer
	m.Composer.TextInput.Focus()
}

func (m *Model) layout() {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return
	}
	bodyHeight := max(m.WindowHeight-footerHeight, 4)
	chatWidth := m.WindowWidth
	sidebarWidth := m.WindowWidth
	if !m.compact() {
		chatWidth -= SidebarWidth
		sidebarWidth = SidebarWidth
	}
	m.Sidebar.SetSize(sidebarWidth, bodyHeight)
	m.Composer.SetWidth(chatWidth)
	m.Chat.SetSize(chatWidth-2, bodyHeight-m.Composer.Height())
}
