package api

import (
	"time"

	json "github.com/goccy/go-json"
)

// Note is a note as the backend returns it. The backend names the id field
// "_id"; "id" is accepted too.
type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type noteWire struct {
	ID        string    `json:"_id"`
	AltID     string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n *Note) UnmarshalJSON(data []byte) error {
	var w noteWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	n.ID = w.ID
	if n.ID == "" {
		n.ID = w.AltID
	}
	n.Title = w.Title
	n.Content = w.Content
	n.CreatedAt = w.CreatedAt
	return nil
}

type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NoteInput is the body of create and update calls.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Ack is returned by calls whose only payload is success.
type Ack struct {
	Message string `json:"message,omitempty"`
}
