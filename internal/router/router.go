package router

import tea "github.com/charmbracelet/bubbletea"

const (
	RouteHome     = "home"
	RouteGenerate = "generate"
)

type NavigateMsg struct {
	Route string
}

// Navigate switches the root page to route.
func Navigate(route string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: route}
	}
}

func Known(route string) bool {
	return route == RouteHome || route == RouteGenerate
}
