package notebook

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electr1fy0/smartnotes/api"
)

func note(id, title string) api.Note {
	return api.Note{ID: id, Title: title, Content: "content of " + id}
}

func ids(notes []api.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestFilterByTitle(t *testing.T) {
	nb := New(
		note("1", "Groceries"),
		note("2", "Meeting notes"),
		note("3", "GROCERY budget"),
		api.Note{ID: "4", Title: "Misc", Content: "grocery list inside content"},
	)

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(nb.Filter("")))
	assert.Equal(t, []string{"1", "3"}, ids(nb.Filter("grocer")))
	assert.Equal(t, []string{"1", "3"}, ids(nb.Filter("GrOcEr")))
	assert.Equal(t, []string{"2"}, ids(nb.Filter("notes")))
	assert.Empty(t, nb.Filter("nothing like this"))
}

func TestFilterMatchesExactlyTheTitleSubset(t *testing.T) {
	titles := []string{"alpha", "Beta", "gamma ALPHA", "delta", "", "Alphabet"}
	var notes []api.Note
	for i, title := range titles {
		notes = append(notes, note(fmt.Sprint(i), title))
	}
	nb := New(notes...)

	for _, search := range []string{"", "a", "alpha", "ALP", "bet", "z", " "} {
		got := nb.Filter(search)
		var want []string
		for _, n := range notes {
			if MatchesTitle(n, search) {
				want = append(want, n.ID)
			}
		}
		assert.Equal(t, len(want), len(got), "search %q", search)
		if len(want) > 0 {
			assert.Equal(t, want, ids(got), "search %q", search)
		}
	}
}

func TestInsertAppendsOnce(t *testing.T) {
	nb := New(note("1", "a"))

	assert.True(t, nb.Insert(note("2", "b")))
	assert.Equal(t, []string{"1", "2"}, ids(nb.All()))

	assert.False(t, nb.Insert(api.Note{ID: "2", Title: "b2"}))
	assert.Equal(t, []string{"1", "2"}, ids(nb.All()))
	got, ok := nb.Get("2")
	require.True(t, ok)
	assert.Equal(t, "b2", got.Title)
}

func TestReplaceKeepsPosition(t *testing.T) {
	nb := New(note("1", "a"), note("2", "b"), note("3", "c"))

	assert.True(t, nb.Replace("2", api.Note{ID: "2", Title: "B"}))
	all := nb.All()
	assert.Equal(t, []string{"1", "2", "3"}, ids(all))
	assert.Equal(t, "B", all[1].Title)

	assert.False(t, nb.Replace("missing", note("missing", "x")))
	assert.Equal(t, 3, nb.Len())
}

func TestReplaceFillsMissingID(t *testing.T) {
	nb := New(note("1", "a"))
	require.True(t, nb.Replace("1", api.Note{Title: "A"}))
	got, ok := nb.Get("1")
	require.True(t, ok)
	assert.Equal(t, "A", got.Title)
}

func TestReplaceRekeys(t *testing.T) {
	nb := New(note("1", "a"), note("2", "b"), note("3", "c"))

	require.True(t, nb.Replace("1", note("3", "moved")))
	assert.Equal(t, []string{"3", "2"}, ids(nb.All()))
	got, _ := nb.Get("3")
	assert.Equal(t, "moved", got.Title)
	_, ok := nb.Get("1")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	nb := New(note("1", "a"), note("2", "b"), note("3", "c"))

	assert.True(t, nb.Remove("2"))
	assert.Equal(t, []string{"1", "3"}, ids(nb.All()))
	_, ok := nb.Get("2")
	assert.False(t, ok)

	assert.False(t, nb.Remove("2"))
	assert.Equal(t, 2, nb.Len())
}

func TestResetDropsDuplicates(t *testing.T) {
	nb := New(note("1", "a"), note("2", "b"), api.Note{ID: "1", Title: "a again"})
	assert.Equal(t, []string{"1", "2"}, ids(nb.All()))
	got, _ := nb.Get("1")
	assert.Equal(t, "a again", got.Title)

	nb.Reset(nil)
	assert.Zero(t, nb.Len())
}

func TestZeroValue(t *testing.T) {
	var nb Notebook
	assert.Empty(t, nb.All())
	assert.False(t, nb.Remove("x"))
	assert.True(t, nb.Insert(note("x", "t")))
	assert.Equal(t, 1, nb.Len())
}
