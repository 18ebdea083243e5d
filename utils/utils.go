package utils

import (
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// EditSession is a note body handed to an external editor through a temp
// file. Run Cmd (under tea.ExecProcess), then call Result.
type EditSession struct {
	Path string
	Cmd  *exec.Cmd
}

// ResolveEditor picks $EDITOR, then nvim, vi, and finally ed. $EDITOR may
// carry arguments, e.g. "code --wait".
func ResolveEditor() []string {
	if ed := strings.Fields(os.Getenv("EDITOR")); len(ed) > 0 {
		return ed
	}
	if p, err := exec.LookPath("nvim"); err == nil {
		return []string{p}
	}
	if p, err := exec.LookPath("vi"); err == nil {
		return []string{p}
	}
	return []string{"ed"}
}

func PrepareEditor(initial string) (*EditSession, error) {
	tmp, err := os.CreateTemp("", "smartnotes-*.md")
	if err != nil {
		return nil, errors.Wrap(err, "create temp file")
	}
	path := tmp.Name()
	if _, err := tmp.WriteString(initial); err != nil {
		tmp.Close()
		os.Remove(path)
		return nil, errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return nil, errors.Wrap(err, "close temp file")
	}

	argv := append(ResolveEditor(), path)
	return &EditSession{
		Path: path,
		Cmd:  exec.Command(argv[0], argv[1:]...),
	}, nil
}

// Result reads back the edited text and removes the temp file.
func (s *EditSession) Result() (string, error) {
	defer os.Remove(s.Path)
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", errors.Wrap(err, "read edited file")
	}
	return string(b), nil
}

func (s *EditSession) Discard() {
	_ = os.Remove(s.Path)
}
