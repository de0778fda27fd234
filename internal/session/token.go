package session

import (
	"encoding/json"
	"os"
	"time"

	"ftask/internal/service"
)

// cachedToken is the on-disk form of a session. It holds only the
// provider-issued tokens, never the submitted credentials.
type cachedToken struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token"`
	Expiry       time.Time `json:"expiry"`
}

// LoadToken reads a cached session from path.
func LoadToken(path string) (service.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return service.Session{}, err
	}
	var tok cachedToken
	if err := json.Unmarshal(data, &tok); err != nil {
		return service.Session{}, err
	}
	return service.Session{
		UserID:       tok.UserID,
		Email:        tok.Email,
		IDToken:      tok.IDToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}, nil
}

// SaveToken writes a session to path with mode 0600.
func SaveToken(path string, sess service.Session) error {
	tok := cachedToken{
		UserID:       sess.UserID,
		Email:        sess.Email,
		IDToken:      sess.IDToken,
		RefreshToken: sess.RefreshToken,
		Expiry:       sess.Expiry,
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
