package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/client/session"
	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email and password and signs in with them. Both
// fields must be non-empty; an empty field aborts the attempt without
// touching the session. The password byte slice is securely wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if email == "" {
		fmt.Println("Email and password are required.")
		return nil
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if len(password) == 0 {
		fmt.Println("Email and password are required.")
		return nil
	}

	user, err := a.session.LoginWithCredentials(ctx, email, password)
	if err != nil {
		return a.reportLoginError(ctx, err)
	}

	fmt.Printf("Signed in as %s\n", user.Email)
	return nil
}

// LoginGoogle signs in through the configured Google identity provider.
func (a *App) LoginGoogle(ctx context.Context) error {
	fmt.Println("Signing in with Google...")

	user, err := a.session.LoginWithGoogle(ctx)
	if err != nil {
		return a.reportLoginError(ctx, err)
	}

	fmt.Printf("Signed in as %s\n", user.Email)
	return nil
}

func (a *App) reportLoginError(ctx context.Context, err error) error {
	if errors.Is(err, session.ErrAlreadyLoggedIn) {
		fmt.Println("Already signed in; log out first.")
		return nil
	}
	a.log.Error(ctx, "login failed", "error", err)
	fmt.Println("Login failed:", err)
	return err
}

// Logout signs out and drops any staged profile edits. The gate moves the
// UI back to the login view through its session subscription.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.hasDraft = false
	fmt.Println("Signed out.")
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.Current()
	if !snap.Authenticated || snap.User == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s (%s, via %s)\n", snap.User.Name, snap.User.Email, snap.User.Provider)
	return nil
}
