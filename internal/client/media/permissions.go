package media

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/kv"
)

const (
	grantGranted = "granted"
	grantDenied  = "denied"
)

// StoredPermissions persists capability grants in the local store under
// perm-camera / perm-library, so the user is asked once per install. A
// recorded denial stays terminal until the key is removed out of band.
type StoredPermissions struct {
	Repo kv.Repository
	// Ask prompts the user for a capability grant on first use.
	Ask func(c Capability) (bool, error)
}

func permKey(c Capability) string {
	return "perm-" + string(c)
}

func (p *StoredPermissions) EnsureGranted(ctx context.Context, c Capability) error {
	stored, err := p.Repo.Get(ctx, permKey(c))
	if err != nil {
		return fmt.Errorf("read %s grant: %w", c, err)
	}

	switch string(stored) {
	case grantGranted:
		return nil
	case grantDenied:
		return ErrPermissionDenied
	}

	granted, err := p.Ask(c)
	if err != nil {
		return err
	}

	value := grantDenied
	if granted {
		value = grantGranted
	}
	if err := p.Repo.Set(ctx, permKey(c), []byte(value)); err != nil {
		return fmt.Errorf("store %s grant: %w", c, err)
	}

	if !granted {
		return ErrPermissionDenied
	}
	return nil
}
