// Package apperr defines the error taxonomy shared by services and handlers.
package apperr

import "errors"

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// Unexpected is anything not explicitly classified (500).
	Unexpected Kind = iota
	// Validation is malformed or missing input (400).
	Validation
	// NotFound is a referenced entity that does not exist (404).
	NotFound
	// Conflict is a uniqueness violation (409).
	Conflict
	// Storage is a backing file unexpectedly missing or unwritable (500).
	Storage
)

// Error carries a kind and a client-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of err, or Unexpected for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}

// StatusCode maps an error to its HTTP status code.
func StatusCode(err error) int {
	switch KindOf(err) {
	case Validation:
		return 400
	case NotFound:
		return 404
	case Conflict:
		return 409
	default:
		return 500
	}
}
