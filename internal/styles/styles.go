package styles

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle lipgloss.Style

	SidebarStyle         lipgloss.Style
	SidebarFocusedStyle  lipgloss.Style
	ConversationStyle    lipgloss.Style
	ConversationActive   lipgloss.Style
	ConversationSelected lipgloss.Style
	ConversationIDStyle  lipgloss.Style
	EmptyStyle           lipgloss.Style
	RefreshActiveStyle   lipgloss.Style

	UserLabelStyle lipgloss.Style
	UserMsgStyle   lipgloss.Style
	AiLabelStyle   lipgloss.Style
	AiMsgStyle     lipgloss.Style
	ErrorStyle     lipgloss.Style

	ScrollActionStyle lipgloss.Style

	InputBoxStyle  lipgloss.Style
	InputBlurStyle lipgloss.Style
	ToggleOnStyle  lipgloss.Style
	ToggleOffStyle lipgloss.Style
	FileChipStyle  lipgloss.Style
	ProductStyle   lipgloss.Style
	HintStyle      lipgloss.Style
	FooterStyle    lipgloss.Style
	ModelNameStyle lipgloss.Style

	ToastTitleStyle   lipgloss.Style
	ToastDescStyle    lipgloss.Style
	ToastInfoStyle    lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	ToastSuccessStyle lipgloss.Style

	ModalStyle         lipgloss.Style
	ModalTitleStyle    lipgloss.Style
	ModalItemStyle     lipgloss.Style
	ModalHeaderStyle   lipgloss.Style
	ModalSelectedStyle lipgloss.Style
	DangerButtonStyle  lipgloss.Style
	ButtonStyle        lipgloss.Style
)

func init() {
	build(CurrentTheme)
}

func build(t Theme) {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
		BorderRight(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	SidebarFocusedStyle = SidebarStyle.BorderForeground(t.Primary)

	ConversationStyle = lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Padding(0, 1)
	ConversationActive = ConversationStyle.
		Foreground(t.Secondary).
		Bold(true)
	ConversationSelected = ConversationStyle.
		Background(t.BgSelected).
		Foreground(lipgloss.Color("#FFFFFF"))
	ConversationIDStyle = lipgloss.NewStyle().Foreground(t.TextMuted)
	EmptyStyle = lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Italic(true).
		Padding(1, 1)
	RefreshActiveStyle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	UserLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Secondary).
		Bold(true).
		Padding(0, 1).
		MarginRight(1)
	UserMsgStyle = lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		PaddingLeft(2).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(t.Secondary)
	AiLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Primary).
		Bold(true).
		Padding(0, 1).
		MarginRight(1)
	AiMsgStyle = lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(t.Primary)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	ScrollActionStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Foreground(t.Primary).
		Padding(0, 1)

	InputBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)
	InputBlurStyle = InputBoxStyle.BorderForeground(t.Border)
	ToggleOnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Info).
		Padding(0, 1)
	ToggleOffStyle = lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Padding(0, 1)
	FileChipStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7C4DFF")).
		Padding(0, 1).
		MarginRight(1)
	ProductStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.TextPrimary).
		Padding(0, 2)
	HintStyle = lipgloss.NewStyle().Foreground(t.TextMuted)
	FooterStyle = lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	ModelNameStyle = lipgloss.NewStyle().Foreground(t.Primary)

	ToastTitleStyle = lipgloss.NewStyle().Bold(true)
	ToastDescStyle = lipgloss.NewStyle().Foreground(t.TextSecondary)
	ToastInfoStyle = lipgloss.NewStyle().Foreground(t.Info)
	ToastErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	ToastSuccessStyle = lipgloss.NewStyle().Foreground(t.Success)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)
	ModalItemStyle = lipgloss.NewStyle().Padding(0, 1)
	ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		PaddingLeft(1)
	ModalSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(t.BgSelected).
		Foreground(lipgloss.Color("#FFFFFF"))
	DangerButtonStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(t.Error).
		Padding(0, 1)
	ButtonStyle = lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Border(lipgloss.NormalBorder(), false).
		Padding(0, 1)
}
