package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Kind classifies a failed call.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNetwork means no response was received.
	KindNetwork
	// KindAuth covers rejected credentials and missing or expired tokens.
	KindAuth
	// KindValidation covers requests the backend refused as malformed,
	// e.g. signing up with an email that is already registered.
	KindValidation
	// KindServer is any other failure status or an unreadable body.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network failure"
	case KindAuth:
		return "unauthorized"
	case KindValidation:
		return "validation error"
	case KindServer:
		return "server error"
	default:
		return "unknown error"
	}
}

// Error is returned by every Client method.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// MessageOf returns the backend's message for err, if it sent one.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

const maxMessageLen = 200

// errorMessage pulls a human readable message out of an error body.
func errorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return ""
	}
	msg := []rune(string(body))
	if len(msg) > maxMessageLen {
		return string(msg[:maxMessageLen-3]) + "..."
	}
	return string(msg)
}
