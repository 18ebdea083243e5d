package model

import "github.com/electr1fy0/smartnotes/api"

type cardState int

const (
	cardCollapsed cardState = iota
	cardExpanded
	cardConfirmingDelete
)

// card is the note detail/delete-confirmation state machine. Only one card is
// ever open, so the notes view holds a single one for the selected note.
type card struct {
	state    cardState
	note     api.Note
	rendered string
}

func (c *card) open(n api.Note) bool {
	if c.state != cardCollapsed {
		return false
	}
	c.state = cardExpanded
	c.note = n
	return true
}

func (c *card) close() {
	if c.state == cardExpanded {
		c.state = cardCollapsed
		c.rendered = ""
	}
}

func (c *card) trash(n api.Note) bool {
	if c.state != cardCollapsed {
		return false
	}
	c.state = cardConfirmingDelete
	c.note = n
	return true
}

func (c *card) cancel() {
	if c.state == cardConfirmingDelete {
		c.state = cardCollapsed
	}
}

// confirm leaves the confirmation and returns the id to delete.
func (c *card) confirm() (string, bool) {
	if c.state != cardConfirmingDelete {
		return "", false
	}
	c.state = cardCollapsed
	return c.note.ID, true
}

// edit hands back the whole note for the editor; only from the collapsed
// state.
func (c card) edit(n api.Note) (api.Note, bool) {
	return n, c.state == cardCollapsed
}
