package devserver

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/electr1fy0/smartnotes/api"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req api.Registration
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.Name) == "" || email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		s.log.Error().Err(err).Msg("hash password")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	s.users[email] = &account{
		user: api.User{Name: strings.TrimSpace(req.Name), Email: email},
		hash: hash,
	}
	writeJSON(w, http.StatusCreated, api.Ack{Message: "User registered successfully"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.Credentials
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.Lock()
	acct, found := s.users[email]
	s.mu.Unlock()
	if !found || bcrypt.CompareHashAndPassword(acct.hash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token := newID()
	s.mu.Lock()
	s.tokens[token] = email
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, api.AuthResponse{Token: token, User: acct.user})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	notes := append([]api.Note{}, s.notes[emailFrom(r)]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, notes)
}

func readNoteInput(w http.ResponseWriter, r *http.Request) (api.NoteInput, bool) {
	var in api.NoteInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return in, false
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return in, false
	}
	return in, true
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	in, ok := readNoteInput(w, r)
	if !ok {
		return
	}
	n := api.Note{
		ID:        newID(),
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: s.now().UTC(),
	}
	email := emailFrom(r)

	s.mu.Lock()
	s.notes[email] = append(s.notes[email], n)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	in, ok := readNoteInput(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	email := emailFrom(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notes[email] {
		if n.ID == id {
			n.Title = in.Title
			n.Content = in.Content
			s.notes[email][i] = n
			writeJSON(w, http.StatusOK, n)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Note not found")
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	email := emailFrom(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	notes := s.notes[email]
	for i, n := range notes {
		if n.ID == id {
			s.notes[email] = append(notes[:i], notes[i+1:]...)
			writeJSON(w, http.StatusOK, api.Ack{Message: "Note deleted"})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Note not found")
}
