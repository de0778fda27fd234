// Package service defines the backend-agnostic types and interfaces for
// task and auth operations.
package service

import (
	"context"
	"errors"
)

// Auth failure classes. Backends map provider error codes onto these so
// commands can show one distinct message per class; anything else is
// treated as an opaque backend failure.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrWrongPassword = errors.New("wrong password")
	ErrEmailInUse    = errors.New("email already in use")
	ErrWeakPassword  = errors.New("weak password")
)

// ErrNotFound is returned by the store when no document matches an ID.
var ErrNotFound = errors.New("not found")

// Store is the remote task store. All Firestore calls go through this
// interface; the task list manager never imports the backend directly.
type Store interface {
	// ListTasks returns every task in the collection, in store order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a new task document and returns the created
	// record with its store-assigned ID.
	CreateTask(ctx context.Context, draft Draft) (Task, error)

	// SetCompleted updates the completed field of one task.
	SetCompleted(ctx context.Context, id string, completed bool) error

	// DeleteTask removes a task document.
	DeleteTask(ctx context.Context, id string) error
}

// Identity is the authentication provider. Implementations classify
// provider failures into the sentinel errors above where possible.
type Identity interface {
	// SignIn exchanges email and password for a session.
	SignIn(ctx context.Context, email, password string) (Session, error)

	// SignUp creates a new account and returns its first session.
	SignUp(ctx context.Context, email, password string) (Session, error)

	// Refresh exchanges a refresh token for a fresh session.
	Refresh(ctx context.Context, refreshToken string) (Session, error)

	// SignOut ends the remote session, if the provider supports it.
	SignOut(ctx context.Context, sess Session) error

	// CreateProfile writes the profile record for a newly created
	// account. Called best-effort after SignUp.
	CreateProfile(ctx context.Context, sess Session) error
}
