package testutil

import (
	"context"
	"sync"
	"time"

	"ftask/internal/service"
)

// FakeIdentity is an in-memory implementation of service.Identity for
// testing. Accounts are a map of email to password.
type FakeIdentity struct {
	mu       sync.Mutex
	accounts map[string]string

	// Error injection for testing
	SignInErr        error
	SignUpErr        error
	RefreshErr       error
	SignOutErr       error
	CreateProfileErr error

	// Call counters
	SignInCalls        int
	SignUpCalls        int
	RefreshCalls       int
	SignOutCalls       int
	CreateProfileCalls int
}

// NewFakeIdentity creates a FakeIdentity with no accounts.
func NewFakeIdentity() *FakeIdentity {
	return &FakeIdentity{accounts: make(map[string]string)}
}

// AddAccount seeds an account.
func (f *FakeIdentity) AddAccount(email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[email] = password
}

func (f *FakeIdentity) session(email string) service.Session {
	return service.Session{
		UserID:       "uid-" + email,
		Email:        email,
		IDToken:      "id-token-" + email,
		RefreshToken: "refresh-token-" + email,
		Expiry:       time.Now().Add(time.Hour),
	}
}

// SignIn implements service.Identity.
func (f *FakeIdentity) SignIn(ctx context.Context, email, password string) (service.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignInCalls++
	if f.SignInErr != nil {
		return service.Session{}, f.SignInErr
	}
	stored, ok := f.accounts[email]
	if !ok {
		return service.Session{}, service.ErrUserNotFound
	}
	if stored != password {
		return service.Session{}, service.ErrWrongPassword
	}
	return f.session(email), nil
}

// SignUp implements service.Identity.
func (f *FakeIdentity) SignUp(ctx context.Context, email, password string) (service.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignUpCalls++
	if f.SignUpErr != nil {
		return service.Session{}, f.SignUpErr
	}
	if _, ok := f.accounts[email]; ok {
		return service.Session{}, service.ErrEmailInUse
	}
	f.accounts[email] = password
	return f.session(email), nil
}

// Refresh implements service.Identity.
func (f *FakeIdentity) Refresh(ctx context.Context, refreshToken string) (service.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RefreshCalls++
	if f.RefreshErr != nil {
		return service.Session{}, f.RefreshErr
	}
	return service.Session{
		UserID:       "uid-refreshed",
		IDToken:      "id-token-refreshed",
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(time.Hour),
	}, nil
}

// SignOut implements service.Identity.
func (f *FakeIdentity) SignOut(ctx context.Context, sess service.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignOutCalls++
	return f.SignOutErr
}

// CreateProfile implements service.Identity.
func (f *FakeIdentity) CreateProfile(ctx context.Context, sess service.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateProfileCalls++
	return f.CreateProfileErr
}
