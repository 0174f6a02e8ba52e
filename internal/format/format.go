// Package format composes outgoing messages and cleans conversation text
// for display.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"nio/internal/models"
)

const (
	DefaultExtractLength = 50
	DefaultExtractFlag   = "..."
)

var fileBlockRE = regexp.MustCompile("```file\\n\\[\\[.*]]\\n[\\s\\S]*?\\n```\\n\\n")

// FormatMessage trims text and prepends the attached file as a fenced block.
func FormatMessage(file models.FileObject, text string) string {
	text = strings.TrimSpace(text)
	if file.Empty() {
		return text
	}
	return fmt.Sprintf("\n```file\n[[%s]]\n%s\n```\n\n%s", file.Name, file.Content, text)
}

// FilterMessage strips embedded file blocks.
func FilterMessage(s string) string {
	return fileBlockRE.ReplaceAllString(s, "")
}

// ExtractMessage cuts s to length runes and appends flag when it was cut.
func ExtractMessage(s string, length int, flag string) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length]) + flag
}

// SanitizeName is the single-line display form of a conversation name.
func SanitizeName(s string) string {
	return strings.Join(strings.Fields(FilterMessage(s)), " ")
}
