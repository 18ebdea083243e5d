// Package api is the client for the notes backend.
//
// Every call sends exactly one request. There is no retry and no timeout
// beyond the one configured on the underlying http.Client. Failures are
// returned as *Error with a Kind the caller can switch on; the client never
// recovers on its own and never touches the stored session.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// TokenSource supplies the current bearer token. An empty token means the
// Authorization header is left off.
type TokenSource interface {
	Token() string
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        zerolog.Logger
}

// New returns a client for the backend at baseURL, e.g.
// "http://localhost:5000/api". tokens may be nil.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Login exchanges credentials for a token and the user's profile.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account. It does not log the user in.
func (c *Client) Signup(ctx context.Context, reg Registration) (*Ack, error) {
	var out Ack
	if err := c.do(ctx, "signup", http.MethodPost, "/auth/signup", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var out []Note
	if err := c.do(ctx, "list notes", http.MethodGet, "/notes", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Note{}
	}
	return out, nil
}

// CreateNote stores a new note; the backend assigns its id and timestamp.
func (c *Client) CreateNote(ctx context.Context, in NoteInput) (*Note, error) {
	var out Note
	if err := c.do(ctx, "create note", http.MethodPost, "/notes", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, in NoteInput) (*Note, error) {
	path, err := notePath("update note", id)
	if err != nil {
		return nil, err
	}
	var out Note
	if err := c.do(ctx, "update note", http.MethodPut, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) (*Ack, error) {
	path, err := notePath("delete note", id)
	if err != nil {
		return nil, err
	}
	var out Ack
	if err := c.do(ctx, "delete note", http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func notePath(op, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", &Error{Op: op, Kind: KindValidation, Message: "missing note id"}
	}
	return "/notes/" + url.PathEscape(id), nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Err: errors.Wrap(err, "marshal request body")}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Err: errors.Wrap(err, "create request")}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().
			Str("op", op).
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Err(err).
			Msg("request failed")
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Str("request_id", requestID).
		Msg("request done")

	return decodeResponse(op, resp, out)
}

func decodeResponse(op string, resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Kind: KindNetwork, Status: resp.StatusCode, Err: errors.Wrap(err, "read response body")}
	}

	if resp.StatusCode >= 400 {
		return &Error{
			Op:      op,
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: errorMessage(data),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Kind: KindServer, Status: resp.StatusCode, Err: errors.Wrap(err, "decode response body")}
	}
	return nil
}
