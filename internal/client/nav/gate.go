// Package nav implements the navigation gate: the single component that
// decides which view is active based on session state. It subscribes to the
// session manager and redirects on authenticated-flag transitions; while the
// session is still initializing it performs no redirects at all.
package nav

import (
	"errors"
	"sync"

	"github.com/dmitrijs2005/todokeeper/internal/client/session"
)

// View names the navigable screens.
type View string

const (
	ViewLogin   View = "login"
	ViewHome    View = "home"
	ViewProfile View = "profile"
)

var (
	// ErrNotSettled is returned for navigation attempts before the initial
	// session read completed.
	ErrNotSettled = errors.New("nav: session not settled yet")

	// ErrUnreachable is returned when a view is not reachable in the
	// current session state.
	ErrUnreachable = errors.New("nav: view not reachable")
)

// Navigator is the rendering surface the gate drives. Replace swaps the
// active screen; the gate guarantees it is not called redundantly.
type Navigator interface {
	Replace(v View)
}

// Gate tracks the session's authenticated flag and keeps the active view
// consistent with it.
type Gate struct {
	nav Navigator

	mu      sync.Mutex
	settled bool
	authed  bool
	active  View
	hasView bool
}

func NewGate(nav Navigator) *Gate {
	return &Gate{nav: nav}
}

// OnSessionChange is the session subscriber. The first settled snapshot
// redirects to login or home; afterwards only a change of the authenticated
// flag triggers a redirect. Loading snapshots are ignored.
func (g *Gate) OnSessionChange(s session.Snapshot) {
	if s.Loading {
		return
	}

	g.mu.Lock()
	firstSettle := !g.settled
	flipped := g.settled && g.authed != s.Authenticated
	g.settled = true
	g.authed = s.Authenticated
	if !firstSettle && !flipped {
		g.mu.Unlock()
		return
	}

	target := ViewLogin
	if s.Authenticated {
		target = ViewHome
	}
	g.mu.Unlock()

	g.replace(target)
}

// Navigate performs a user-driven view change, enforcing reachability:
// login only while logged out, home and profile only while logged in.
func (g *Gate) Navigate(v View) error {
	g.mu.Lock()
	if !g.settled {
		g.mu.Unlock()
		return ErrNotSettled
	}
	authed := g.authed
	g.mu.Unlock()

	switch v {
	case ViewLogin:
		if authed {
			return ErrUnreachable
		}
	case ViewHome, ViewProfile:
		if !authed {
			return ErrUnreachable
		}
	default:
		return ErrUnreachable
	}

	g.replace(v)
	return nil
}

// Active reports the current view; ok is false until the first redirect.
func (g *Gate) Active() (v View, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active, g.hasView
}

// replace forwards to the navigator unless the view is already active.
// Redirecting to the active view is a no-op, not an error.
func (g *Gate) replace(v View) {
	g.mu.Lock()
	if g.hasView && g.active == v {
		g.mu.Unlock()
		return
	}
	g.active = v
	g.hasView = true
	g.mu.Unlock()

	g.nav.Replace(v)
}
