// Package portal seals and opens shareable customer portal link tokens.
// A sealed token wraps a product's portal ID with an expiry, so a link can be
// handed out over WhatsApp without exposing a permanent identifier.
package portal

import (
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
)

// TokenSealer mints and verifies expiring portal link tokens.
type TokenSealer struct {
	key *fernet.Key
	ttl time.Duration
}

// NewTokenSealer creates a sealer from a base64 fernet key. An empty key
// generates an ephemeral one: sealed links then survive only until the next
// restart, which is acceptable for a single-instance deployment.
func NewTokenSealer(encodedKey string, ttl time.Duration) (*TokenSealer, error) {
	if encodedKey == "" {
		key := new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate portal key: %w", err)
		}
		return &TokenSealer{key: key, ttl: ttl}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode portal key: %w", err)
	}
	return &TokenSealer{key: key, ttl: ttl}, nil
}

// TTL returns the configured link lifetime.
func (s *TokenSealer) TTL() time.Duration {
	return s.ttl
}

// Seal wraps a portal ID in a signed, expiring token.
func (s *TokenSealer) Seal(portalID string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(portalID), s.key)
	if err != nil {
		return "", fmt.Errorf("failed to seal portal token: %w", err)
	}
	return string(token), nil
}

// Open verifies a sealed token and returns the portal ID it wraps. Tampered
// or expired tokens fail with ErrInvalidPortalToken.
func (s *TokenSealer) Open(token string) (string, error) {
	portalID := fernet.VerifyAndDecrypt([]byte(token), s.ttl, []*fernet.Key{s.key})
	if portalID == nil {
		return "", apperrors.ErrInvalidPortalToken
	}
	return string(portalID), nil
}
