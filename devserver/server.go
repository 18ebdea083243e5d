// Package devserver is an in-memory stand-in for the notes backend. It serves
// the same REST surface the client talks to and keeps nothing on disk.
package devserver

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/electr1fy0/smartnotes/api"
)

type account struct {
	user api.User
	hash []byte
}

type Server struct {
	mu     sync.Mutex
	users  map[string]*account   // by email
	tokens map[string]string     // token -> email
	notes  map[string][]api.Note // email -> notes, creation order

	router *mux.Router
	log    zerolog.Logger
	cost   int
	now    func() time.Time
}

type Option func(*Server)

// WithBcryptCost lowers the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.cost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New returns a server with routes mounted under /api.
func New(log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		users:  make(map[string]*account),
		tokens: make(map[string]string),
		notes:  make(map[string][]api.Note),
		log:    log,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	router := mux.NewRouter()
	router.Use(s.logRequests)
	r := router.PathPrefix("/api").Subrouter()
	r.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/notes", s.requireAuth(s.handleListNotes)).Methods(http.MethodGet)
	r.HandleFunc("/notes", s.requireAuth(s.handleCreateNote)).Methods(http.MethodPost)
	r.HandleFunc("/notes/{id}", s.requireAuth(s.handleUpdateNote)).Methods(http.MethodPut)
	r.HandleFunc("/notes/{id}", s.requireAuth(s.handleDeleteNote)).Methods(http.MethodDelete)
	s.router = router
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type ctxKey struct{}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		s.mu.Lock()
		email, found := s.tokens[token]
		s.mu.Unlock()
		if !found {
			writeError(w, http.StatusUnauthorized, "Token is not valid")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, email)))
	}
}

func emailFrom(r *http.Request) string {
	email, _ := r.Context().Value(ctxKey{}).(string)
	return email
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Ack{Message: message})
}

func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func newID() string { return uuid.NewString() }
