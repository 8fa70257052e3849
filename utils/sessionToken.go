package utils

import (
	"DentalSimple/models"
	"fmt"

	"github.com/o1egl/paseto"
)

const sessionFooter = "dentalsimple-session"

// SessionSealer encrypts the persisted session with a PASETO v2 local token.
// Sessions carry no expiry.
type SessionSealer struct {
	key []byte
}

// NewSessionSealer returns a sealer for the given 32 byte symmetric key.
func NewSessionSealer(key []byte) (*SessionSealer, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("session key must be 32 bytes long, got %d", len(key))
	}
	return &SessionSealer{key: append([]byte(nil), key...)}, nil
}

// Seal encrypts the user into a token.
func (s *SessionSealer) Seal(user models.User) (string, error) {
	token, err := paseto.NewV2().Encrypt(s.key, user, sessionFooter)
	if err != nil {
		return "", fmt.Errorf("failed to seal session: %w", err)
	}
	return token, nil
}

// Open decrypts a token produced by Seal.
func (s *SessionSealer) Open(token string) (*models.User, error) {
	var user models.User
	var footer string
	if err := paseto.NewV2().Decrypt(token, s.key, &user, &footer); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	if footer != sessionFooter {
		return nil, fmt.Errorf("unexpected session footer %q", footer)
	}
	return &user, nil
}
