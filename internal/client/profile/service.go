// Package profile implements the profile editor: display name, bio, and the
// profile photo path, all persisted independently in the local store. Unlike
// the session token/user pair, partial success between the profile fields is
// accepted and reported, not hidden.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/todokeeper/internal/client/media"
	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
)

// Store keys owned by the profile editor. Disjoint from the session keys,
// so the two writers need no coordination beyond last-write-wins per key.
const (
	keyDisplayName = "profile-display-name"
	keyBio         = "profile-bio"
	keyImagePath   = "profile-image-path"
)

// Source selects where an updated photo comes from.
type Source int

const (
	SourceLibrary Source = iota
	SourceCamera
)

// Profile is the editable profile state. ImagePath is empty when no photo
// is set.
type Profile struct {
	DisplayName string
	Bio         string
	ImagePath   string
}

// Service loads and persists profile fields and orchestrates photo updates
// through the media capability.
type Service struct {
	repo   kv.Repository
	perms  media.Permissions
	picker media.Picker
	log    logging.Logger

	mu  sync.Mutex
	cur Profile
}

func NewService(repo kv.Repository, perms media.Permissions, picker media.Picker, log logging.Logger) *Service {
	return &Service{repo: repo, perms: perms, picker: picker, log: log}
}

// Current returns the in-memory profile.
func (s *Service) Current() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Load hydrates the profile from the store. Read errors are surfaced; the
// fields read so far are kept.
func (s *Service) Load(ctx context.Context) (Profile, error) {
	var p Profile

	read := func(key string, dst *string) error {
		v, err := s.repo.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		*dst = string(v)
		return nil
	}

	if err := read(keyDisplayName, &p.DisplayName); err != nil {
		return p, err
	}
	if err := read(keyBio, &p.Bio); err != nil {
		return p, err
	}
	if err := read(keyImagePath, &p.ImagePath); err != nil {
		return p, err
	}

	s.mu.Lock()
	s.cur = p
	s.mu.Unlock()
	return p, nil
}

// Save persists the display name and bio as two independent writes. One
// write failing does not stop the other; both errors are reported joined.
// Successful fields update the in-memory profile.
func (s *Service) Save(ctx context.Context, displayName, bio string) error {
	var nameErr, bioErr error

	if nameErr = s.repo.Set(ctx, keyDisplayName, []byte(displayName)); nameErr == nil {
		s.mu.Lock()
		s.cur.DisplayName = displayName
		s.mu.Unlock()
	}
	if bioErr = s.repo.Set(ctx, keyBio, []byte(bio)); bioErr == nil {
		s.mu.Lock()
		s.cur.Bio = bio
		s.mu.Unlock()
	}

	return errors.Join(nameErr, bioErr)
}

// SetPhoto persists a photo path and reports whether a read-back confirmed
// the write. An empty or blank path is rejected with (false, nil) and the
// store is left untouched. On any failure the optimistic in-memory value is
// reverted.
func (s *Service) SetPhoto(ctx context.Context, path string) (bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return false, nil
	}

	s.mu.Lock()
	prev := s.cur.ImagePath
	s.cur.ImagePath = path
	s.mu.Unlock()

	revert := func() {
		s.mu.Lock()
		s.cur.ImagePath = prev
		s.mu.Unlock()
	}

	if err := s.repo.Set(ctx, keyImagePath, []byte(path)); err != nil {
		revert()
		return false, err
	}

	stored, err := s.repo.Get(ctx, keyImagePath)
	if err != nil {
		revert()
		return false, err
	}
	if string(stored) != path {
		revert()
		return false, nil
	}
	return true, nil
}

// ClearPhoto removes the stored photo path. The in-memory value is reset
// unconditionally; a storage error is logged and swallowed.
func (s *Service) ClearPhoto(ctx context.Context) {
	if err := s.repo.Delete(ctx, keyImagePath); err != nil {
		s.log.Warn(ctx, "failed to remove stored photo path", "error", err)
	}

	s.mu.Lock()
	s.cur.ImagePath = ""
	s.mu.Unlock()
}

// UpdatePhoto acquires an image from the requested source and stores its
// path. Both capability grants are required up front, matching the mobile
// flow this mirrors. Cancellation returns media.ErrCancelled with prior
// state untouched; an unusable result returns media.ErrNoImage and leaves
// the stored path unchanged.
func (s *Service) UpdatePhoto(ctx context.Context, source Source) (string, error) {
	if err := s.perms.EnsureGranted(ctx, media.CapabilityCamera); err != nil {
		return "", err
	}
	if err := s.perms.EnsureGranted(ctx, media.CapabilityLibrary); err != nil {
		return "", err
	}

	var (
		path string
		err  error
	)
	switch source {
	case SourceCamera:
		path, err = s.picker.CaptureFromCamera(ctx)
	default:
		path, err = s.picker.PickFromLibrary(ctx)
	}
	if err != nil {
		return "", err
	}

	ok, err := s.SetPhoto(ctx, path)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", media.ErrNoImage
	}
	return path, nil
}
