package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service error so transports can map it to a status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuth
)

// Error is a domain error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrUserNotFound     = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrExerciseNotFound = &Error{Kind: KindNotFound, Message: "exercise not found"}
	ErrEmailTaken       = &Error{Kind: KindConflict, Message: "email already registered"}
	ErrUsernameTaken    = &Error{Kind: KindConflict, Message: "username already taken"}
	ErrExerciseExists   = &Error{Kind: KindConflict, Message: "exercise name already exists"}
	ErrAccountExists    = &Error{Kind: KindConflict, Message: "account already exists"}
	ErrBookmarkChanged  = &Error{Kind: KindConflict, Message: "bookmark was changed concurrently"}

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = &Error{Kind: KindAuth, Message: "invalid email or password"}
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func missingField(field string) error {
	return &ValidationError{Field: field, Message: "field is required"}
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// KindOf returns the classification of err; unknown errors are internal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return KindInternal
}
