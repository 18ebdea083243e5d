package model

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/electr1fy0/smartnotes/api"
)

const dateLayout = "02/01/2006"

// initials takes the first letter of the first two words of name, upper
// cased. An empty name gives "MD".
func initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(w)
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "MD"
	}
	return string(out)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "--/--/----"
	}
	return t.Local().Format(dateLayout)
}

// preview is the first non-blank line of content, cut to limit runes.
func preview(content string, limit int) string {
	line := ""
	for _, l := range strings.Split(content, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}
	if utf8.RuneCountInString(line) <= limit {
		return line
	}
	r := []rune(line)
	return string(r[:limit-1]) + "…"
}

type noteItem struct {
	note api.Note
}

func (i noteItem) FilterValue() string { return i.note.Title }
func (i noteItem) Title() string       { return i.note.Title }

func (i noteItem) Description() string {
	desc := formatDate(i.note.CreatedAt)
	if p := preview(i.note.Content, 60); p != "" {
		desc += " • " + p
	}
	return desc
}
