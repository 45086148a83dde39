// Package session owns the client's authentication state: a single Manager
// instance hydrates the session from the local store once at startup and is
// the only writer of the session-token/session-user pair. Screens reach it
// by injection, never through package-level state.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/client/identity"
	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
)

// ErrAlreadyLoggedIn is returned when a login is attempted while a user is
// signed in. Callers must log out first; logins are not treated as
// idempotent re-authentication.
var ErrAlreadyLoggedIn = errors.New("session: already logged in")

type state int

const (
	stateInitializing state = iota
	stateLoggedOut
	stateLoggedIn
)

// Snapshot is the observable session state handed to subscribers.
// User is non-nil exactly when Authenticated is true. Loading is true only
// before the initial store read settles.
type Snapshot struct {
	Authenticated bool
	User          *User
	Loading       bool
}

// Manager implements the session state machine
// (initializing → logged-out/logged-in, with login/logout transitions) over
// the local store. All methods are safe for use from a single goroutine;
// the internal lock only guards subscriber bookkeeping against the
// notification path.
type Manager struct {
	db         *sql.DB
	google     identity.Provider
	log        logging.Logger
	loginDelay time.Duration
	now        func() time.Time

	mu    sync.Mutex
	st    state
	user  *User
	subs  map[int]func(Snapshot)
	nextS int
}

// NewManager wires a Manager to the local database and the federated
// identity provider. loginDelay is the simulated round-trip for the
// credentials path; pass zero to disable it.
func NewManager(db *sql.DB, google identity.Provider, log logging.Logger, loginDelay time.Duration) *Manager {
	return &Manager{
		db:         db,
		google:     google,
		log:        log,
		loginDelay: loginDelay,
		now:        time.Now,
		st:         stateInitializing,
		subs:       map[int]func(Snapshot){},
	}
}

func (m *Manager) repo() kv.Repository {
	return kv.NewSQLiteRepository(m.db)
}

// Current returns the present snapshot.
func (m *Manager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		Authenticated: m.st == stateLoggedIn,
		User:          m.user,
		Loading:       m.st == stateInitializing,
	}
}

// Subscribe registers fn for snapshot notifications and returns a cancel
// function. fn is invoked after every settled state change, including the
// initial settle.
func (m *Manager) Subscribe(fn func(Snapshot)) (cancel func()) {
	m.mu.Lock()
	id := m.nextS
	m.nextS++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) notify(snap Snapshot) {
	m.mu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Initialize hydrates the session from the store: authenticated only when
// both the token and the user record are present, the record decodes, and
// the token verifies against the per-install secret. It never fails
// outward; any read or parse problem is logged and treated as logged-out.
// The store is read once per process; repeated calls return the settled
// snapshot.
func (m *Manager) Initialize(ctx context.Context) Snapshot {
	m.mu.Lock()
	if m.st != stateInitializing {
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap
	}
	m.mu.Unlock()

	user := m.restore(ctx)

	m.mu.Lock()
	if user != nil {
		m.st = stateLoggedIn
		m.user = user
	} else {
		m.st = stateLoggedOut
		m.user = nil
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return snap
}

// restore reads and validates the stored token/user pair. A nil result
// means logged-out.
func (m *Manager) restore(ctx context.Context) *User {
	repo := m.repo()

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		m.log.Warn(ctx, "failed to read stored session token", "error", err)
		return nil
	}
	rawUser, err := repo.Get(ctx, keyUser)
	if err != nil {
		m.log.Warn(ctx, "failed to read stored user record", "error", err)
		return nil
	}
	if token == nil || rawUser == nil {
		// A half-written pair counts as logged-out as well.
		return nil
	}

	user, err := decodeUser(rawUser)
	if err != nil {
		m.log.Warn(ctx, "stored user record is not usable", "error", err)
		return nil
	}

	secret, err := repo.Get(ctx, keySecret)
	if err != nil || len(secret) == 0 {
		m.log.Warn(ctx, "signing secret unavailable, discarding stored session", "error", err)
		return nil
	}
	if err := verifyToken(string(token), secret, user); err != nil {
		m.log.Warn(ctx, "stored session token rejected", "error", err)
		return nil
	}

	m.log.Info(ctx, "session restored", "user", user.Email, "provider", user.Provider)
	return user
}

// LoginWithCredentials signs in with email and password. Inputs are assumed
// non-empty (the login screen validates them); no credential check is
// performed against a backend; the authenticator is simulated and always
// succeeds unless storage fails. The resulting user carries
// provider=email, an ID derived from the login time, and a name derived
// from the local part of the email address.
func (m *Manager) LoginWithCredentials(ctx context.Context, email string, password []byte) (*User, error) {
	if err := m.guardLoggedOut(); err != nil {
		return nil, err
	}

	// Simulated remote round trip.
	if err := sleepCtx(ctx, m.loginDelay); err != nil {
		return nil, err
	}

	user := &User{
		ID:       fmt.Sprintf("%d-email", m.now().UnixMilli()),
		Email:    email,
		Name:     emailLocalPart(email),
		Provider: ProviderEmail,
	}

	if err := m.commitLogin(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginWithGoogle signs in through the configured federated identity
// provider. Persistence follows the same contract as the credentials path.
func (m *Manager) LoginWithGoogle(ctx context.Context) (*User, error) {
	if err := m.guardLoggedOut(); err != nil {
		return nil, err
	}

	id, err := m.google.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:       id.Subject,
		Email:    id.Email,
		Name:     id.Name,
		Picture:  id.Picture,
		Provider: ProviderGoogle,
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("%d-google", m.now().UnixMilli())
	}

	if err := m.commitLogin(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (m *Manager) guardLoggedOut() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.st == stateLoggedIn {
		return ErrAlreadyLoggedIn
	}
	return nil
}

// commitLogin persists the token/user pair in one transaction and flips the
// in-memory state. On storage failure nothing is committed and the prior
// state stays in place.
func (m *Manager) commitLogin(ctx context.Context, user *User) error {
	err := dbx.WithTx(ctx, m.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)

		secret, err := loadOrCreateSecret(ctx, repo)
		if err != nil {
			return err
		}
		token, err := mintToken(secret, user, m.now())
		if err != nil {
			return err
		}
		data, err := user.encode()
		if err != nil {
			return err
		}

		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, data)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.st = stateLoggedIn
	m.user = user
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "user", user.Email, "provider", user.Provider)
	m.notify(snap)
	return nil
}

// Logout removes the stored token/user pair and clears the in-memory
// session. It never fails outward: a storage error is logged and swallowed,
// and memory is cleared regardless so the UI always reaches the logged-out
// view. Note the accepted inconsistency: if the removal failed, a later
// restart may resurrect the session from the stale store contents.
func (m *Manager) Logout(ctx context.Context) {
	err := dbx.WithTx(ctx, m.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUser)
	})
	if err != nil {
		m.log.Warn(ctx, "failed to clear stored session; stale credentials may survive until the next start", "error", err)
	}

	m.mu.Lock()
	m.st = stateLoggedOut
	m.user = nil
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.log.Info(ctx, "logged out")
	m.notify(snap)
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func sleepCtx(ctx context.Context, d time.Duration) error {
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
