package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"nio/internal/format"
	"nio/internal/models"
	"nio/internal/styles"
)

// TruncateWidth cuts s to at most width terminal cells.
func TruncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width, "…")
}

// ConversationTitle is the sidebar label of c.
func ConversationTitle(c models.Conversation) string {
	name := format.SanitizeName(c.Name)
	if name == "" {
		return fmt.Sprintf("#%d", c.ID)
	}
	return name
}

// DeleteTarget is the conversation name shown in the delete prompt.
func DeleteTarget(c models.Conversation) string {
	return format.ExtractMessage(format.FilterMessage(c.Name), format.DefaultExtractLength, format.DefaultExtractFlag)
}

func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = -d
	}
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "min")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hr")
	}
	days := int(d.Hours() / 24)
	if days < 14 {
		return plural(days, "day")
	}
	return plural(days/7, "week")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func WrappedLineCount(value string, width int) int {
	if width <= 0 {
		return 1
	}
	count := 0
	for _, line := range strings.Split(value, "\n") {
		w := runewidth.StringWidth(line)
		if w == 0 {
			count++
			continue
		}
		count += (w-1)/width + 1
	}
	if count < 1 {
		return 1
	}
	return count
}

func FormatUserMessage(content string, width int) string {
	label := styles.UserLabelStyle.Render("YOU")
	text := format.FilterMessage(content)
	if text != content {
		text = styles.FileChipStyle.Render("file") + text
	}
	msg := styles.UserMsgStyle.Width(max(width-4, 10)).Render(text)
	return label + "\n" + msg
}

func FormatAIMessage(content string) string {
	label := styles.AiLabelStyle.Render("NIO")
	return label + "\n" + styles.AiMsgStyle.Render(content)
}
