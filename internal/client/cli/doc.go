// Package cli provides the interactive todokeeper command-line client.
//
// It wires configuration, local storage, the session manager, the profile
// editor and the navigation gate into a REPL whose command set follows the
// active view. Typical flow: restore the stored session, land on the login
// or home view accordingly, and execute user commands.
//
// Key features:
//   - Email and Google sign-in, persisted across restarts
//   - Profile editing: display name, bio, photo from library or camera
//   - View switching driven by the session's authenticated flag
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, nav.Gate, and runREPL for details.
package cli
