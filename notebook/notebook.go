// Package notebook is the client's in-memory copy of the user's notes: an
// ordered collection keyed by note id.
package notebook

import (
	"strings"

	"github.com/electr1fy0/smartnotes/api"
)

// Notebook keeps notes in the order the backend returned or created them. An
// id appears at most once. The zero value is empty and ready to use.
type Notebook struct {
	order []string
	notes map[string]api.Note
}

func New(notes ...api.Note) *Notebook {
	nb := &Notebook{}
	nb.Reset(notes)
	return nb
}

// Reset replaces the whole collection. A repeated id keeps its first
// position and its last value.
func (nb *Notebook) Reset(notes []api.Note) {
	nb.order = make([]string, 0, len(notes))
	nb.notes = make(map[string]api.Note, len(notes))
	for _, n := range notes {
		nb.Insert(n)
	}
}

// Insert appends n, or replaces the entry already holding n.ID in place. It
// reports whether n was appended.
func (nb *Notebook) Insert(n api.Note) bool {
	if nb.notes == nil {
		nb.notes = make(map[string]api.Note)
	}
	if _, exists := nb.notes[n.ID]; exists {
		nb.notes[n.ID] = n
		return false
	}
	nb.order = append(nb.order, n.ID)
	nb.notes[n.ID] = n
	return true
}

// Replace swaps the entry for id with n, keeping its position. If the backend
// handed back a different id the entry is re-keyed, and any other entry that
// already used the new id is dropped. Replace reports false when id is unknown.
func (nb *Notebook) Replace(id string, n api.Note) bool {
	if _, exists := nb.notes[id]; !exists {
		return false
	}
	if n.ID == "" {
		n.ID = id
	}
	if n.ID != id {
		if _, clash := nb.notes[n.ID]; clash {
			nb.Remove(n.ID)
		}
		delete(nb.notes, id)
		for i, key := range nb.order {
			if key == id {
				nb.order[i] = n.ID
				break
			}
		}
	}
	nb.notes[n.ID] = n
	return true
}

func (nb *Notebook) Remove(id string) bool {
	if _, exists := nb.notes[id]; !exists {
		return false
	}
	delete(nb.notes, id)
	for i, key := range nb.order {
		if key == id {
			nb.order = append(nb.order[:i], nb.order[i+1:]...)
			break
		}
	}
	return true
}

func (nb *Notebook) Get(id string) (api.Note, bool) {
	n, ok := nb.notes[id]
	return n, ok
}

func (nb *Notebook) Len() int { return len(nb.order) }

func (nb *Notebook) All() []api.Note {
	return nb.Filter("")
}

// Filter returns, in order, the notes whose title contains search ignoring
// case. Content is not searched. An empty search returns everything.
func (nb *Notebook) Filter(search string) []api.Note {
	out := make([]api.Note, 0, len(nb.order))
	for _, id := range nb.order {
		n := nb.notes[id]
		if MatchesTitle(n, search) {
			out = append(out, n)
		}
	}
	return out
}

func MatchesTitle(n api.Note, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), strings.ToLower(search))
}
