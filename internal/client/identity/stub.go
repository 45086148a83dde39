package identity

import (
	"context"
	"time"
)

// StubProvider returns a fixed identity after an artificial delay, standing
// in for the real exchange. It must never be wired as the production
// provider; config selects it explicitly (mode "stub").
type StubProvider struct {
	Delay    time.Duration
	Identity Identity
}

// NewStubProvider builds a stub with the placeholder Google identity the
// demo app used.
func NewStubProvider(delay time.Duration) *StubProvider {
	return &StubProvider{
		Delay: delay,
		Identity: Identity{
			Subject: "google-demo-user",
			Email:   "demo.user@gmail.com",
			Name:    "Demo User",
			Picture: "https://lh3.googleusercontent.com/a/default-user",
		},
	}
}

func (p *StubProvider) Authenticate(ctx context.Context) (*Identity, error) {
	if err := sleep(ctx, p.Delay); err != nil {
		return nil, err
	}
	id := p.Identity
	return &id, nil
}
