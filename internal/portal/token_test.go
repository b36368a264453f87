package portal_test

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/qasitly/Installment-Sales-Manager-Backend/internal/errors"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/portal"
)

// TestTokenSealer tests the shareable portal link tokens.
//
// WHY: A sealed link is handed out over WhatsApp; it must round-trip to the
// portal ID it wraps, and any tampering or expiry must fail closed.
func TestTokenSealer(t *testing.T) {
	t.Run("seals and opens a portal ID", func(t *testing.T) {
		sealer, err := portal.NewTokenSealer("", 7*24*time.Hour)
		if err != nil {
			t.Fatalf("NewTokenSealer() returned unexpected error: %v", err)
		}

		token, err := sealer.Seal("portal-123")
		if err != nil {
			t.Fatalf("Seal() returned unexpected error: %v", err)
		}

		portalID, err := sealer.Open(token)
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		if portalID != "portal-123" {
			t.Errorf("Expected portal-123, got %q", portalID)
		}
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		sealer, err := portal.NewTokenSealer("", time.Hour)
		if err != nil {
			t.Fatalf("NewTokenSealer() returned unexpected error: %v", err)
		}

		token, err := sealer.Seal("portal-123")
		if err != nil {
			t.Fatalf("Seal() returned unexpected error: %v", err)
		}

		tampered := []byte(token)
		tampered[len(tampered)/2] ^= 0xff
		if _, err := sealer.Open(string(tampered)); !errors.Is(err, apperrors.ErrInvalidPortalToken) {
			t.Errorf("Expected ErrInvalidPortalToken, got %v", err)
		}
	})

	t.Run("rejects a token from a different key", func(t *testing.T) {
		sealerA, err := portal.NewTokenSealer("", time.Hour)
		if err != nil {
			t.Fatalf("NewTokenSealer() returned unexpected error: %v", err)
		}
		sealerB, err := portal.NewTokenSealer("", time.Hour)
		if err != nil {
			t.Fatalf("NewTokenSealer() returned unexpected error: %v", err)
		}

		token, err := sealerA.Seal("portal-123")
		if err != nil {
			t.Fatalf("Seal() returned unexpected error: %v", err)
		}
		if _, err := sealerB.Open(token); !errors.Is(err, apperrors.ErrInvalidPortalToken) {
			t.Errorf("Expected ErrInvalidPortalToken, got %v", err)
		}
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		sealer, err := portal.NewTokenSealer("", time.Hour)
		if err != nil {
			t.Fatalf("NewTokenSealer() returned unexpected error: %v", err)
		}
		if _, err := sealer.Open("not-a-token"); !errors.Is(err, apperrors.ErrInvalidPortalToken) {
			t.Errorf("Expected ErrInvalidPortalToken, got %v", err)
		}
	})

	t.Run("rejects an invalid configured key", func(t *testing.T) {
		if _, err := portal.NewTokenSealer("short", time.Hour); err == nil {
			t.Error("Expected an error for an undecodable key")
		}
	})
}
