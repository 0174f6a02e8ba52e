package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nio/internal/models"
	"nio/internal/notify"
	"nio/internal/router"
	"nio/internal/styles"
)

func (m *Model) View() string {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return ""
	}
	if m.Route == router.RouteGenerate {
		return m.RenderGenerate()
	}

	bodyHeight := max(m.WindowHeight-footerHeight, 4)
	var body string
	switch {
	case m.compact() && m.store.MenuOpen():
		body = m.Sidebar.View(true)
	case m.compact():
		body = m.renderChatColumn(m.WindowWidth, bodyHeight)
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.Sidebar.View(m.focus == focusSidebar),
			m.renderChatColumn(m.WindowWidth-SidebarWidth, bodyHeight),
		)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, body, m.RenderFooter())

	modal := m.Sidebar.ModalView()
	if modal == "" {
		modal = m.Composer.ModalView()
	}
	if modal == "" {
		return content
	}
	return lipgloss.Place(
		m.WindowWidth,
		m.WindowHeight,
		lipgloss.Center,
		lipgloss.Center,
		styles.ModalStyle.Width(min(ModalWidth, m.WindowWidth-4)).Render(modal),
	)
}

func (m *Model) renderChatColumn(width, height int) string {
	composer := m.Composer.View(m.focus == focusComposer)
	chatHeight := max(height-lipgloss.Height(composer), 1)

	var chat string
	if len(m.Chat.Messages()) == 0 {
		chat = m.Composer.Landing(width, chatHeight)
	} else {
		chat = lipgloss.NewStyle().Height(chatHeight).PaddingLeft(1).Render(m.Chat.View())
	}
	return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, chat, composer))
}

// RenderFooter shows the session status and either toasts or key hints.
func (m *Model) RenderFooter() string {
	st := m.store.Snapshot()

	model := st.Model
	if mdl, _, ok := models.FindModel(st.Model); ok {
		model = mdl.Name
	}
	status := []string{styles.ModelNameStyle.Render(model)}
	if st.Web {
		status = append(status, styles.ToastInfoStyle.Render(m.t.T("chat.web")))
	}
	if st.Authenticated {
		status = append(status, styles.ToastSuccessStyle.Render("●"))
	} else {
		status = append(status, styles.HintStyle.Render("○ "+m.t.T("login")))
	}
	line := strings.Join(status, styles.HintStyle.Render(" │ "))

	second := m.Help.View(keys)
	if toasts := m.notify.Visible(); len(toasts) > 0 {
		second = renderToasts(toasts)
	}
	clip := lipgloss.NewStyle().MaxWidth(max(m.WindowWidth-2, 1))
	return styles.FooterStyle.Width(m.WindowWidth).Render(clip.Render(line) + "\n" + clip.Render(second))
}

func renderToasts(toasts []notify.Toast) string {
	parts := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := styles.ToastInfoStyle
		switch t.Kind {
		case notify.KindError:
			style = styles.ToastErrorStyle
		case notify.KindSuccess:
			style = styles.ToastSuccessStyle
		}
		text := style.Render("● ") + styles.ToastTitleStyle.Render(t.Title)
		if t.Description != "" {
			text += " " + styles.ToastDescStyle.Render(t.Description)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "   ")
}

// RenderGenerate is the project generation page.
func (m *Model) RenderGenerate() string {
	card := styles.ProductStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(m.t.T("generate.title")),
		styles.HintStyle.Render(m.t.T("generate.description")),
		"",
		styles.HintStyle.Render(keys.Back.Help().Key+": "+keys.Back.Help().Desc),
	))
	return lipgloss.Place(m.WindowWidth, m.WindowHeight, lipgloss.Center, lipgloss.Center, card)
}
