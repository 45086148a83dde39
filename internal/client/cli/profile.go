package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/client/media"
	"github.com/dmitrijs2005/todokeeper/internal/client/nav"
	"github.com/dmitrijs2005/todokeeper/internal/client/profile"
)

// OpenProfile navigates to the profile view and hydrates the editor from
// the store. Staged edits start from the stored values.
func (a *App) OpenProfile(ctx context.Context) error {
	if err := a.gate.Navigate(nav.ViewProfile); err != nil {
		fmt.Println("Profile is not available right now.")
		return err
	}

	p, err := a.profile.Load(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to load profile", "error", err)
		fmt.Println("Failed to load profile:", err)
		return err
	}

	a.draftName = p.DisplayName
	a.draftBio = p.Bio
	a.hasDraft = true

	return a.ShowProfile(ctx)
}

// BackHome returns from the profile view. Unsaved edits are discarded.
func (a *App) BackHome(ctx context.Context) error {
	a.hasDraft = false
	if err := a.gate.Navigate(nav.ViewHome); err != nil {
		return err
	}
	return nil
}

// ShowProfile prints the profile: the read-only account email plus the
// editable fields, marking staged values that differ from the store.
func (a *App) ShowProfile(ctx context.Context) error {
	snap := a.session.Current()
	if snap.User != nil {
		fmt.Printf("Email:  %s (read-only)\n", snap.User.Email)
	}

	p := a.profile.Current()
	fmt.Printf("Name:   %s%s\n", a.valueOrDraft(p.DisplayName, a.draftName), draftMark(p.DisplayName, a.draftName, a.hasDraft))
	fmt.Printf("Bio:    %s%s\n", a.valueOrDraft(p.Bio, a.draftBio), draftMark(p.Bio, a.draftBio, a.hasDraft))
	if p.ImagePath != "" {
		fmt.Printf("Photo:  %s\n", p.ImagePath)
	} else {
		fmt.Println("Photo:  (none)")
	}
	return nil
}

func (a *App) valueOrDraft(stored, draft string) string {
	if a.hasDraft {
		return draft
	}
	return stored
}

func draftMark(stored, draft string, hasDraft bool) string {
	if hasDraft && stored != draft {
		return " (unsaved)"
	}
	return ""
}

// EditName stages a new display name. Nothing is persisted until save.
func (a *App) EditName(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}
	a.draftName = name
	a.hasDraft = true
	return nil
}

// EditBio stages a new bio, read as multi-line text.
func (a *App) EditBio(ctx context.Context) error {
	bio, err := GetMultiline(a.reader, "Enter bio", os.Stdout)
	if err != nil {
		return err
	}
	a.draftBio = bio
	a.hasDraft = true
	return nil
}

// SaveProfile persists the staged display name and bio. The two fields are
// written independently, so one of them can succeed even when the other
// write fails; the error reports every failed field.
func (a *App) SaveProfile(ctx context.Context) error {
	if !a.hasDraft {
		p := a.profile.Current()
		a.draftName, a.draftBio = p.DisplayName, p.Bio
		a.hasDraft = true
	}

	if err := a.profile.Save(ctx, a.draftName, a.draftBio); err != nil {
		a.log.Error(ctx, "failed to save profile", "error", err)
		fmt.Println("Failed to save profile:", err)
		return err
	}

	fmt.Println("Profile saved.")
	return nil
}

// PickPhoto updates the profile photo from the library.
func (a *App) PickPhoto(ctx context.Context) error {
	return a.updatePhoto(ctx, profile.SourceLibrary)
}

// CapturePhoto updates the profile photo from the camera command.
func (a *App) CapturePhoto(ctx context.Context) error {
	return a.updatePhoto(ctx, profile.SourceCamera)
}

func (a *App) updatePhoto(ctx context.Context, source profile.Source) error {
	path, err := a.profile.UpdatePhoto(ctx, source)
	switch {
	case errors.Is(err, media.ErrCancelled):
		fmt.Println("Cancelled.")
		return nil
	case errors.Is(err, media.ErrPermissionDenied):
		fmt.Println("Permission denied.")
		return nil
	case errors.Is(err, media.ErrNoImage):
		fmt.Println("No usable image.")
		return nil
	case err != nil:
		a.log.Error(ctx, "failed to update photo", "error", err)
		fmt.Println("Failed to update photo:", err)
		return err
	}

	fmt.Println("Photo updated:", path)
	return nil
}

// ClearPhoto removes the profile photo.
func (a *App) ClearPhoto(ctx context.Context) error {
	a.profile.ClearPhoto(ctx)
	fmt.Println("Photo removed.")
	return nil
}
