// Package firebase implements the service interfaces against the
// Firebase REST APIs: Identity Toolkit for email/password auth and
// Cloud Firestore for task documents.
package firebase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	firestore "google.golang.org/api/firestore/v1"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"ftask/internal/config"
	"ftask/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	// secureTokenURL is the Firebase token refresh endpoint.
	secureTokenURL = "https://securetoken.googleapis.com/v1/token"

	// usersCollection holds one profile document per account.
	usersCollection = "users"
)

// Auth implements service.Identity using the Identity Toolkit API.
type Auth struct {
	rp         *identitytoolkit.RelyingpartyService
	httpClient *http.Client
	apiKey     string
	projectID  string
}

// NewAuth creates an identity client for the configured project.
func NewAuth(ctx context.Context, cfg *config.Config) (*Auth, error) {
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create identity service: %w", err)
	}
	return &Auth{
		rp:         svc.Relyingparty,
		httpClient: http.DefaultClient,
		apiKey:     cfg.APIKey,
		projectID:  cfg.ProjectID,
	}, nil
}

// SignIn implements service.Identity.
func (a *Auth) SignIn(ctx context.Context, email, password string) (service.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := a.rp.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return service.Session{}, classifyAuthError(err)
	}

	return service.Session{
		UserID:       resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		Expiry:       expiry(resp.ExpiresIn),
	}, nil
}

// SignUp implements service.Identity.
func (a *Auth) SignUp(ctx context.Context, email, password string) (service.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := a.rp.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return service.Session{}, classifyAuthError(err)
	}

	return service.Session{
		UserID:       resp.LocalId,
		Email:        email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		Expiry:       expiry(resp.ExpiresIn),
	}, nil
}

// Refresh implements service.Identity. The secure token endpoint is not
// part of the Identity Toolkit surface, so it is called directly.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (service.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		secureTokenURL+"?key="+url.QueryEscape(a.apiKey),
		strings.NewReader(form.Encode()))
	if err != nil {
		return service.Session{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return service.Session{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return service.Session{}, fmt.Errorf("token refresh failed: %s", resp.Status)
	}

	// All numeric fields arrive as strings.
	var body struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		UserID       string `json:"user_id"`
		ExpiresIn    string `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return service.Session{}, fmt.Errorf("invalid token refresh response: %w", err)
	}

	seconds, _ := strconv.ParseInt(body.ExpiresIn, 10, 64)
	return service.Session{
		UserID:       body.UserID,
		IDToken:      body.IDToken,
		RefreshToken: body.RefreshToken,
		Expiry:       expiry(seconds),
	}, nil
}

// SignOut implements service.Identity. Password sign-in keeps no
// server-side session in the Identity Toolkit API; disposing of the
// cached token is the whole operation, so there is nothing to revoke.
func (a *Auth) SignOut(ctx context.Context, sess service.Session) error {
	return nil
}

// CreateProfile implements service.Identity. The profile document is
// keyed by the new account's user ID and written with its own session
// token, since sign-up happens before any store client exists.
func (a *Auth) CreateProfile(ctx context.Context, sess service.Session) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: sess.IDToken, Expiry: sess.Expiry})
	svc, err := firestore.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return fmt.Errorf("failed to create firestore service: %w", err)
	}

	doc := &firestore.Document{Fields: map[string]firestore.Value{
		"email":     {StringValue: sess.Email},
		"createdAt": {TimestampValue: time.Now().UTC().Format(time.RFC3339)},
	}}
	_, err = svc.Projects.Databases.Documents.
		CreateDocument(documentsRoot(a.projectID), usersCollection, doc).
		DocumentId(sess.UserID).
		Context(ctx).Do()
	return wrapError(err)
}

// expiry converts an expires-in duration in seconds to a deadline.
func expiry(seconds int64) time.Time {
	if seconds <= 0 {
		seconds = 3600
	}
	return time.Now().Add(time.Duration(seconds) * time.Second)
}

// classifyAuthError maps Identity Toolkit error codes onto the service
// sentinel errors. Unknown codes pass through unchanged. Codes may carry
// a trailing explanation (e.g. "WEAK_PASSWORD : ..."), so only the
// prefix is matched.
func classifyAuthError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}
	switch {
	case strings.HasPrefix(gerr.Message, "EMAIL_NOT_FOUND"):
		return service.ErrUserNotFound
	case strings.HasPrefix(gerr.Message, "INVALID_EMAIL"):
		return service.ErrInvalidEmail
	case strings.HasPrefix(gerr.Message, "INVALID_PASSWORD"),
		strings.HasPrefix(gerr.Message, "INVALID_LOGIN_CREDENTIALS"):
		return service.ErrWrongPassword
	case strings.HasPrefix(gerr.Message, "EMAIL_EXISTS"):
		return service.ErrEmailInUse
	case strings.HasPrefix(gerr.Message, "WEAK_PASSWORD"):
		return service.ErrWeakPassword
	}
	return err
}
