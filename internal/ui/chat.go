package ui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"nio/internal/models"
	"nio/internal/styles"
)

const scrollFPS = 60

// ChatInterface renders the messages of the active conversation and owns
// the jump-to-bottom affordance.
type ChatInterface struct {
	Viewport  viewport.Model
	Renderer  *glamour.TermRenderer
	Spinner   spinner.Model
	threshold int

	messages   []models.Message
	showScroll bool

	spring    harmonica.Spring
	animating bool
	pos, vel  float64
}

func NewChatInterface(threshold int) *ChatInterface {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.CurrentTheme.Primary)

	vp := viewport.New(60, 15)
	vp.MouseWheelEnabled = true

	return &ChatInterface{
		Viewport:  vp,
		Spinner:   sp,
		threshold: threshold,
		spring:    harmonica.NewSpring(harmonica.FPS(scrollFPS), 6.0, 1.0),
	}
}

func (c *ChatInterface) SetSize(width, height int) {
	width, height = max(width, 10), max(height, 3)
	if width == c.Viewport.Width && height == c.Viewport.Height && c.Renderer != nil {
		return
	}
	rewrap := width != c.Viewport.Width || c.Renderer == nil
	c.Viewport.Width = width
	c.Viewport.Height = height

	if rewrap {
		glamourStyle := "dark"
		if !lipgloss.HasDarkBackground() {
			glamourStyle = "light"
		}
		c.Renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath(glamourStyle),
			glamour.WithWordWrap(max(width-6, 20)),
		)
	}
	c.render(false)
}

// SetMessages replaces the rendered list. Any change scrolls to the end.
func (c *ChatInterface) SetMessages(msgs []models.Message) {
	if sameMessages(c.messages, msgs) {
		return
	}
	c.messages = msgs
	c.render(true)
}

func (c *ChatInterface) Messages() []models.Message {
	return c.messages
}

// ShowScroll reports whether the jump-to-bottom affordance is visible.
func (c *ChatInterface) ShowScroll() bool {
	return c.showScroll
}

// Waiting is true while the last reply has no content yet.
func (c *ChatInterface) Waiting() bool {
	n := len(c.messages)
	return n > 0 && c.messages[n-1].Role == models.RoleAssistant && c.messages[n-1].Content == ""
}

// render rebuilds the content. With scroll set it jumps to the end;
// otherwise the offset is kept unless the view was already at the end.
func (c *ChatInterface) render(scroll bool) {
	stick := scroll || c.Viewport.AtBottom()
	if len(c.messages) == 0 {
		c.Viewport.SetContent("")
		c.measure()
		return
	}
	parts := make([]string, 0, len(c.messages))
	for _, msg := range c.messages {
		switch msg.Role {
		case models.RoleUser:
			parts = append(parts, FormatUserMessage(msg.Content, c.Viewport.Width))
		case models.RoleAssistant:
			parts = append(parts, FormatAIMessage(c.renderMarkdown(msg.Content)))
		}
	}
	c.Viewport.SetContent(strings.Join(parts, "\n\n"))
	if scroll {
		c.animating = false
	}
	if stick && !c.animating {
		c.Viewport.GotoBottom()
	}
	c.measure()
}

func (c *ChatInterface) renderMarkdown(content string) string {
	if content == "" {
		return c.Spinner.View() + " Generating..."
	}
	if c.Renderer == nil {
		return content
	}
	out, err := c.Renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(out)
}

func (c *ChatInterface) distanceFromBottom() int {
	return c.Viewport.TotalLineCount() - c.Viewport.YOffset - c.Viewport.Height
}

func (c *ChatInterface) measure() {
	c.showScroll = c.distanceFromBottom() > c.threshold
}

// ScrollToBottom starts the smooth scroll to the end.
func (c *ChatInterface) ScrollToBottom() tea.Cmd {
	if c.Viewport.AtBottom() {
		c.measure()
		return nil
	}
	c.animating = true
	c.pos = float64(c.Viewport.YOffset)
	c.vel = 0
	return scrollFrame()
}

func scrollFrame() tea.Cmd {
	return tea.Tick(time.Second/scrollFPS, func(time.Time) tea.Msg {
		return scrollFrameMsg{}
	})
}

func (c *ChatInterface) step() tea.Cmd {
	if !c.animating {
		return nil
	}
	target := float64(max(c.Viewport.TotalLineCount()-c.Viewport.Height, 0))
	c.pos, c.vel = c.spring.Update(c.pos, c.vel, target)
	if math.Abs(target-c.pos) < 0.5 && math.Abs(c.vel) < 0.5 {
		c.Viewport.GotoBottom()
		c.animating = false
		c.measure()
		return nil
	}
	c.Viewport.SetYOffset(int(math.Round(c.pos)))
	c.measure()
	return scrollFrame()
}

func (c *ChatInterface) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scrollFrameMsg:
		return c.step()

	case spinner.TickMsg:
		if !c.Waiting() {
			return nil
		}
		var cmd tea.Cmd
		c.Spinner, cmd = c.Spinner.Update(msg)
		c.render(false)
		return cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Bottom):
			return c.ScrollToBottom()
		case key.Matches(msg, keys.PageUp):
			c.animating = false
			c.Viewport.HalfPageUp()
		case key.Matches(msg, keys.PageDown):
			c.animating = false
			c.Viewport.HalfPageDown()
		}
		c.measure()
		return nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		c.Viewport, cmd = c.Viewport.Update(msg)
		c.animating = false
		c.measure()
		return cmd
	}
	return nil
}

func (c *ChatInterface) View() string {
	view := c.Viewport.View()
	if !c.showScroll {
		return view
	}
	button := styles.ScrollActionStyle.Render("↓ " + keys.Bottom.Help().Key)
	lines := strings.Split(view, "\n")
	bh := lipgloss.Height(button)
	if len(lines) <= bh {
		return view
	}
	overlay := lipgloss.PlaceHorizontal(c.Viewport.Width, lipgloss.Right, button)
	return strings.Join(append(lines[:len(lines)-bh], overlay), "\n")
}

func sameMessages(a, b []models.Message) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Content != b[i].Content {
			return false
		}
	}
	return true
}
