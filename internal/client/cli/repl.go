package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/client/nav"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	activeView() nav.View
	Login(ctx context.Context) error
	LoginGoogle(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	OpenProfile(ctx context.Context) error
	BackHome(ctx context.Context) error
	ShowProfile(ctx context.Context) error
	EditName(ctx context.Context) error
	EditBio(ctx context.Context) error
	SaveProfile(ctx context.Context) error
	PickPhoto(ctx context.Context) error
	CapturePhoto(ctx context.Context) error
	ClearPhoto(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the todokeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The accepted command set
// depends on the active view, so screens the session state does not allow
// are simply not reachable from the prompt. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Login view:
//	  - help           — show available commands
//	  - login          — sign in with email and password
//	  - google         — sign in with Google
//	  - exit | quit    — leave the program
//
//	Home view:
//	  - help           — show available commands
//	  - profile        — open the profile screen
//	  - whoami         — show the signed-in user
//	  - logout         — sign out
//	  - exit | quit    — leave the program
//
//	Profile view:
//	  - show / name / bio / save / photo / camera / clearphoto / back
//	  - logout, exit | quit
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("todo> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		switch a.activeView() {
		case nav.ViewLogin:
			runLoginCommand(ctx, a, cmd)
		case nav.ViewHome:
			runHomeCommand(ctx, a, cmd)
		case nav.ViewProfile:
			runProfileCommand(ctx, a, cmd)
		default:
			printlnFn("Still loading, please retry.")
		}
	}
}

func runLoginCommand(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "help":
		printlnFn("Available commands: login, google, exit")
	case "login":
		_ = a.Login(ctx)
	case "google":
		_ = a.LoginGoogle(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func runHomeCommand(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "help":
		printlnFn("Available commands: profile, whoami, logout, exit")
	case "profile":
		_ = a.OpenProfile(ctx)
	case "whoami":
		_ = a.WhoAmI(ctx)
	case "logout":
		_ = a.Logout(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}

func runProfileCommand(ctx context.Context, a execIface, cmd string) {
	switch cmd {
	case "help":
		printlnFn("Available commands: show, name, bio, save, photo, camera, clearphoto, back, logout, exit")
	case "show":
		_ = a.ShowProfile(ctx)
	case "name":
		_ = a.EditName(ctx)
	case "bio":
		_ = a.EditBio(ctx)
	case "save":
		_ = a.SaveProfile(ctx)
	case "photo":
		_ = a.PickPhoto(ctx)
	case "camera":
		_ = a.CapturePhoto(ctx)
	case "clearphoto":
		_ = a.ClearPhoto(ctx)
	case "back":
		_ = a.BackHome(ctx)
	case "logout":
		_ = a.Logout(ctx)
	default:
		printlnFn("Unknown command:", cmd)
	}
}
