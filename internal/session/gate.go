// Package session decides whether the current user is signed in and
// performs the sign-in, sign-up and sign-out transitions. The session
// token lives in a single file under the config dir; its presence is
// what "logged in" means, with no remote validation at check time.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"ftask/internal/config"
	"ftask/internal/service"
)

// Validation errors returned before any remote call is made.
var (
	ErrEmailRequired    = errors.New("email required")
	ErrPasswordRequired = errors.New("password required")
)

// ErrNotLoggedIn is returned when no session token is cached.
var ErrNotLoggedIn = errors.New("not logged in")

// signOutAttempts bounds remote sign-out retries before giving up.
const signOutAttempts = 2

// Gate is the session gate: it owns the local token cache and talks to
// the identity provider for the auth transitions.
type Gate struct {
	cfg      *config.Config
	identity service.Identity
}

// NewGate creates a gate over the given config and identity provider.
func NewGate(cfg *config.Config, identity service.Identity) *Gate {
	return &Gate{cfg: cfg, identity: identity}
}

// LoggedIn reports whether a session token is cached locally.
func (g *Gate) LoggedIn() bool {
	sess, err := LoadToken(g.cfg.TokenPath())
	return err == nil && sess.IDToken != ""
}

// Session returns the cached session, or ErrNotLoggedIn.
func (g *Gate) Session() (service.Session, error) {
	sess, err := LoadToken(g.cfg.TokenPath())
	if err != nil || sess.IDToken == "" {
		return service.Session{}, ErrNotLoggedIn
	}
	return sess, nil
}

// SignIn validates the inputs, authenticates with the provider and
// persists the returned session. Empty inputs are rejected without a
// remote call.
func (g *Gate) SignIn(ctx context.Context, email, password string) (service.Session, error) {
	if err := validateCredentials(email, password); err != nil {
		return service.Session{}, err
	}
	sess, err := g.identity.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return service.Session{}, err
	}
	if err := g.persist(sess); err != nil {
		return service.Session{}, err
	}
	return sess, nil
}

// SignUp validates the inputs, creates the account and persists its
// first session. If persisting fails, the partial token file is removed
// and the error propagates: the remote account exists but the local
// state stays logged-out, so a later sign-in recovers cleanly.
func (g *Gate) SignUp(ctx context.Context, email, password string) (service.Session, error) {
	if err := validateCredentials(email, password); err != nil {
		return service.Session{}, err
	}
	sess, err := g.identity.SignUp(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return service.Session{}, err
	}
	if err := g.persist(sess); err != nil {
		return service.Session{}, err
	}
	return sess, nil
}

// CreateProfile writes the profile record for a freshly signed-up
// session. Callers treat failure as a warning; sign-up is not rolled
// back.
func (g *Gate) CreateProfile(ctx context.Context, sess service.Session) error {
	return g.identity.CreateProfile(ctx, sess)
}

// SignOut ends the remote session and removes the local token. The
// remote call is retried a bounded number of times; its last failure is
// returned as warn while the local token is still removed, so the user
// always ends up logged out.
func (g *Gate) SignOut(ctx context.Context) (warn, err error) {
	sess, err := g.Session()
	if err != nil {
		return nil, err
	}

	for i := 0; i < signOutAttempts; i++ {
		if warn = g.identity.SignOut(ctx, sess); warn == nil {
			break
		}
	}

	if err := g.cfg.RemoveToken(); err != nil {
		return warn, fmt.Errorf("failed to remove token: %w", err)
	}
	return warn, nil
}

// TokenSource returns an oauth2 token source backed by the cached
// session, refreshing the ID token through the provider when it
// expires. Rotated tokens are persisted.
func (g *Gate) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	sess, err := g.Session()
	if err != nil {
		return nil, err
	}
	base := &oauth2.Token{AccessToken: sess.IDToken, Expiry: sess.Expiry}
	return oauth2.ReuseTokenSource(base, &refreshSource{
		ctx:          ctx,
		gate:         g,
		email:        sess.Email,
		refreshToken: sess.RefreshToken,
	}), nil
}

// persist writes the session to the token file, removing any partial
// file if the write fails.
func (g *Gate) persist(sess service.Session) error {
	if err := g.cfg.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := SaveToken(g.cfg.TokenPath(), sess); err != nil {
		os.Remove(g.cfg.TokenPath())
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// refreshSource exchanges the refresh token for a new session on demand.
// Wrapped in oauth2.ReuseTokenSource, so Token is only called once the
// current ID token has expired.
type refreshSource struct {
	ctx          context.Context
	gate         *Gate
	email        string
	refreshToken string
}

func (s *refreshSource) Token() (*oauth2.Token, error) {
	sess, err := s.gate.identity.Refresh(s.ctx, s.refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	// The refresh response carries no email; keep the cached one.
	if sess.Email == "" {
		sess.Email = s.email
	}
	if err := s.gate.persist(sess); err != nil {
		return nil, err
	}
	s.refreshToken = sess.RefreshToken
	return &oauth2.Token{AccessToken: sess.IDToken, Expiry: sess.Expiry}, nil
}
