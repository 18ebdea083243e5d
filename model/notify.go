package model

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/electr1fy0/smartnotes/api"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Result is the outcome of a view action, handed to the notifier for
// display.
type Result struct {
	Level Level
	Kind  api.Kind
	Text  string
}

func info(text string) Result    { return Result{Level: LevelInfo, Text: text} }
func success(text string) Result { return Result{Level: LevelSuccess, Text: text} }

// invalid is a local validation failure; nothing was sent.
func invalid(text string) Result {
	return Result{Level: LevelError, Kind: api.KindValidation, Text: text}
}

func failure(action string, err error) Result {
	kind := api.KindOf(err)
	text := action
	switch kind {
	case api.KindNetwork:
		text += ": cannot reach the server, check your connection"
	case api.KindAuth:
		text += ": please check your credentials or log in again"
	case api.KindValidation:
		if msg := api.MessageOf(err); msg != "" {
			text += ": " + msg
		} else {
			text += ": the server rejected the request"
		}
	case api.KindServer:
		text += ": server error"
		if msg := api.MessageOf(err); msg != "" {
			text += " (" + msg + ")"
		}
	default:
		text += ": " + err.Error()
	}
	return Result{Level: LevelError, Kind: kind, Text: text}
}

const (
	noticeTTL = 3 * time.Second
	errorTTL  = 5 * time.Second
)

// notifier shows one Result at a time until it expires or is replaced.
type notifier struct {
	current *Result
	seq     int
}

func (n *notifier) push(r Result) tea.Cmd {
	n.seq++
	n.current = &r
	seq := n.seq
	ttl := noticeTTL
	if r.Level == LevelError {
		ttl = errorTTL
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (n *notifier) expire(seq int) {
	if seq == n.seq {
		n.current = nil
	}
}

func (n notifier) last() (Result, bool) {
	if n.current == nil {
		return Result{}, false
	}
	return *n.current, true
}

func (n notifier) view() string {
	if n.current == nil {
		return ""
	}
	switch n.current.Level {
	case LevelError:
		return errorStyle.Render(n.current.Text)
	case LevelSuccess:
		return successStyle.Render(n.current.Text)
	default:
		return helpStyle.Render(n.current.Text)
	}
}
