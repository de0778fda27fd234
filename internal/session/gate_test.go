package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ftask/internal/config"
	"ftask/internal/service"
	"ftask/internal/session"
	"ftask/internal/testutil"
)

func newGate(t *testing.T, identity service.Identity) (*session.Gate, *config.Config) {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir(), APIKey: "key", ProjectID: "project"}
	return session.NewGate(cfg, identity), cfg
}

func TestGate_SignInPersistsSession(t *testing.T) {
	identity := testutil.NewFakeIdentity()
	identity.AddAccount("a@b.com", "secret")
	gate, cfg := newGate(t, identity)

	sess, err := gate.SignIn(context.Background(), "a@b.com", "secret")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if sess.IDToken == "" || sess.RefreshToken == "" {
		t.Error("expected provider-issued tokens")
	}
	if !gate.LoggedIn() {
		t.Error("expected logged in after sign in")
	}
	if !cfg.HasToken() {
		t.Error("expected token file to exist")
	}

	// The cache holds the issued tokens, never the password.
	cached, err := gate.Session()
	if err != nil {
		t.Fatalf("session read failed: %v", err)
	}
	if cached.IDToken != sess.IDToken || cached.Email != "a@b.com" {
		t.Errorf("cached session mismatch: %+v", cached)
	}
}

func TestGate_SignInEmptyInputsMakeNoRemoteCall(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"empty email", "", "x", session.ErrEmailRequired},
		{"blank email", "   ", "x", session.ErrEmailRequired},
		{"empty password", "a@b.com", "", session.ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := testutil.NewFakeIdentity()
			gate, _ := newGate(t, identity)

			_, err := gate.SignIn(context.Background(), tt.email, tt.password)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if identity.SignInCalls != 0 {
				t.Errorf("expected no remote call, got %d", identity.SignInCalls)
			}
			if gate.LoggedIn() {
				t.Error("expected logged out")
			}
		})
	}
}

func TestGate_SignInFailureClasses(t *testing.T) {
	identity := testutil.NewFakeIdentity()
	identity.AddAccount("a@b.com", "secret")
	gate, _ := newGate(t, identity)

	if _, err := gate.SignIn(context.Background(), "missing@b.com", "x"); !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := gate.SignIn(context.Background(), "a@b.com", "wrong"); !errors.Is(err, service.ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
	if gate.LoggedIn() {
		t.Error("expected logged out after failures")
	}
}

func TestGate_SignUpCreatesAccountAndSession(t *testing.T) {
	identity := testutil.NewFakeIdentity()
	gate, _ := newGate(t, identity)

	sess, err := gate.SignUp(context.Background(), "new@b.com", "secret")
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if sess.UserID == "" {
		t.Error("expected user ID from provider")
	}
	if !gate.LoggedIn() {
		t.Error("expected logged in after sign up")
	}

	if _, err := gate.SignUp(context.Background(), "new@b.com", "secret"); !errors.Is(err, service.ErrEmailInUse) {
		t.Errorf("expected ErrEmailInUse, got %v", err)
	}
}

// A successful remote sign-up with a failed local persistence write
// leaves the local state logged-out; the remote account still exists.
func TestGate_SignUpPersistFailureStaysLoggedOut(t *testing.T) {
	identity := testutil.NewFakeIdentity()
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "blocked"), APIKey: "key", ProjectID: "project"}

	// Occupy the config dir path with a file so the write fails.
	if err := writeFile(cfg.Dir); err != nil {
		t.Fatal(err)
	}
	gate := session.NewGate(cfg, identity)

	_, err := gate.SignUp(context.Background(), "new@b.com", "secret")
	if err == nil {
		t.Fatal("expected persist error")
	}
	if identity.SignUpCalls != 1 {
		t.Errorf("expected remote account creation, got %d calls", identity.SignUpCalls)
	}
	if gate.LoggedIn() {
		t.Error("expected logged out after persist failure")
	}
}

// writeFile occupies a path with a regular file so MkdirAll fails on it.
func writeFile(path string) error {
	return os.WriteFile(path, []byte("x"), 0600)
}

func TestGate_SignOutRemovesTokenDespiteRemoteFailure(t *testing.T) {
	identity := testutil.NewFakeIdentity()
	identity.AddAccount("a@b.com", "secret")
	identity.SignOutErr = errors.New("provider unavailable")
	gate, cfg := newGate(t, identity)

	if _, err := gate.SignIn(context.Background(), "a@b.com", "secret"); err != nil {
		t.Fatalf("sign in failed: %v", err)
	}

	warn, err := gate.SignOut(context.Background())
	if err != nil {
		t.Fatalf("sign out failed: %v", err)
	}
	if warn == nil {
		t.Error("expected remote failure warning")
	}
	// Bounded retries, then give up.
	if identity.SignOutCalls != 2 {
		t.Errorf("expected 2 remote attempts, got %d", identity.SignOutCalls)
	}
	if cfg.HasToken() {
		t.Error("expected token removed regardless of remote failure")
	}
	if gate.LoggedIn() {
		t.Error("expected logged out")
	}
}

func TestGate_SignOutNotLoggedIn(t *testing.T) {
	gate, _ := newGate(t, testutil.NewFakeIdentity())

	_, err := gate.SignOut(context.Background())
	if !errors.Is(err, session.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestGate_TokenSourceRefreshesExpiredSession(t *testing.T) {
	identity := testutil.NewFakeIdentity()
	gate, cfg := newGate(t, identity)

	// Seed an already-expired session.
	expired := service.Session{
		UserID:       "uid-1",
		Email:        "a@b.com",
		IDToken:      "stale",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(-time.Hour),
	}
	if err := cfg.EnsureDir(); err != nil {
		t.Fatal(err)
	}
	if err := session.SaveToken(cfg.TokenPath(), expired); err != nil {
		t.Fatal(err)
	}

	ts, err := gate.TokenSource(context.Background())
	if err != nil {
		t.Fatalf("token source failed: %v", err)
	}

	tok, err := ts.Token()
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}
	if tok.AccessToken != "id-token-refreshed" {
		t.Errorf("expected refreshed token, got %q", tok.AccessToken)
	}
	if identity.RefreshCalls != 1 {
		t.Errorf("expected 1 refresh call, got %d", identity.RefreshCalls)
	}

	// Rotated session is persisted, with the email carried over.
	cached, err := gate.Session()
	if err != nil {
		t.Fatalf("session read failed: %v", err)
	}
	if cached.IDToken != "id-token-refreshed" || cached.Email != "a@b.com" {
		t.Errorf("rotated session not persisted: %+v", cached)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token.json")

	want := service.Session{
		UserID:       "uid-1",
		Email:        "a@b.com",
		IDToken:      "id",
		RefreshToken: "refresh",
		Expiry:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := session.SaveToken(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := session.LoadToken(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}
