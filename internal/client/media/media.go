// Package media models the image-acquisition capability the profile screen
// uses: picking a photo from a library and capturing one with a camera,
// both guarded by per-capability permission grants. Cancellation, denial,
// and an unusable result are distinct outcomes, not generic errors.
package media

import (
	"context"
	"errors"
)

var (
	// ErrCancelled means the user backed out; prior state stays untouched.
	ErrCancelled = errors.New("media: selection cancelled")

	// ErrPermissionDenied means the capability grant was refused. This is
	// terminal: the caller shows guidance instead of retrying.
	ErrPermissionDenied = errors.New("media: permission denied")

	// ErrNoImage means acquisition finished but produced no usable path.
	ErrNoImage = errors.New("media: no usable image returned")
)

// Capability names a device capability that requires a grant.
type Capability string

const (
	CapabilityCamera  Capability = "camera"
	CapabilityLibrary Capability = "library"
)

// Picker acquires an image and returns its local path.
type Picker interface {
	PickFromLibrary(ctx context.Context) (string, error)
	CaptureFromCamera(ctx context.Context) (string, error)
}

// Permissions gates access to device capabilities. EnsureGranted returns
// nil when the capability may be used and ErrPermissionDenied otherwise.
type Permissions interface {
	EnsureGranted(ctx context.Context, c Capability) error
}
