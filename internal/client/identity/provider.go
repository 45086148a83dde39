// Package identity abstracts the federated ("Sign in with Google") identity
// source behind a narrow interface. The production implementation performs a
// real OAuth 2.0 device-authorization exchange; the stub fabricates a fixed
// identity and exists for tests and offline demos only.
package identity

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrAccessDenied means the user rejected the authorization request.
	ErrAccessDenied = errors.New("identity: access denied")

	// ErrCodeExpired means the device code expired before the user approved it.
	ErrCodeExpired = errors.New("identity: device code expired")
)

// Identity is the subset of identity-provider claims the client consumes.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Provider authenticates the user against an external identity source and
// returns the resulting identity. Implementations must honor ctx.
type Provider interface {
	Authenticate(ctx context.Context) (*Identity, error)
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
