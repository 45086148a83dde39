package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/client/config"
	"github.com/dmitrijs2005/todokeeper/internal/client/identity"
	"github.com/dmitrijs2005/todokeeper/internal/client/media"
	"github.com/dmitrijs2005/todokeeper/internal/client/nav"
	"github.com/dmitrijs2005/todokeeper/internal/client/profile"
	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/todokeeper/internal/client/session"
	"github.com/dmitrijs2005/todokeeper/internal/client/storage"
	"github.com/dmitrijs2005/todokeeper/internal/filex"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
)

// App wires storage, the session manager, the profile editor and the
// navigation gate into the interactive client. It is also the gate's
// Navigator: Replace renders the banner of the screen that became active.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	session *session.Manager
	profile *profile.Service
	gate    *nav.Gate
	reader  *bufio.Reader

	// Unsaved profile edits staged by the name/bio commands.
	draftName string
	draftBio  string
	hasDraft  bool
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dbPath := cfg.DatabasePath
	if dbPath == "" {
		dir, err := filex.EnsureDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolving data dir: %w", err)
		}
		dbPath = filepath.Join(dir, "todokeeper.db")
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	repo := kv.NewSQLiteRepository(db)
	if err := repo.SelfTest(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage self-test: %w", err)
	}

	a := &App{
		config: cfg,
		log:    log,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
	}

	a.session = session.NewManager(db, newGoogleProvider(cfg), log, cfg.EmailLoginDelay)

	photosDir, err := filex.EnsureSubDir(filepath.Dir(dbPath), "photos")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("resolving photos dir: %w", err)
	}
	picker := &media.DevicePicker{
		Prompt:        func(prompt string) (string, error) { return GetSimpleText(a.reader, prompt, os.Stdout) },
		CameraCommand: cfg.CameraCommand,
		PhotosDir:     photosDir,
	}
	perms := &media.StoredPermissions{Repo: repo, Ask: a.askPermission}
	a.profile = profile.NewService(repo, perms, picker, log)

	a.gate = nav.NewGate(a)
	return a, nil
}

// newGoogleProvider selects the Google sign-in backend. The stub provider
// needs no network and is the default; device mode runs the OAuth device
// grant against the configured endpoints.
func newGoogleProvider(cfg *config.Config) identity.Provider {
	if cfg.GoogleAuthMode == config.GoogleAuthDevice {
		return &identity.DeviceFlowProvider{
			ClientID:      cfg.GoogleClientID,
			DeviceAuthURL: cfg.GoogleDeviceAuthURL,
			TokenURL:      cfg.GoogleTokenURL,
			Scope:         cfg.GoogleScope,
			Announce: func(userCode, verificationURL string) {
				fmt.Printf("Open %s and enter code %s\n", verificationURL, userCode)
			},
		}
	}
	return identity.NewStubProvider(cfg.GoogleLoginDelay)
}

// Run restores the session, keeps the navigation gate subscribed to it and
// drives the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	cancel := a.session.Subscribe(a.gate.OnSessionChange)
	defer cancel()

	fmt.Println("todokeeper (type 'help' for commands)")
	fmt.Println("Loading...")

	snap := a.session.Initialize(ctx)
	if snap.Authenticated {
		if _, err := a.profile.Load(ctx); err != nil {
			a.log.Warn(ctx, "failed to load profile", "error", err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
	return nil
}

// Replace renders the screen that just became active. It is called by the
// navigation gate, never directly.
func (a *App) Replace(v nav.View) {
	switch v {
	case nav.ViewLogin:
		fmt.Println("-- Sign in --")
	case nav.ViewHome:
		greeting := "-- Home --"
		if snap := a.session.Current(); snap.User != nil {
			greeting = fmt.Sprintf("-- Home -- signed in as %s", snap.User.Email)
		}
		fmt.Println(greeting)
	case nav.ViewProfile:
		fmt.Println("-- Profile --")
	}
}

func (a *App) activeView() nav.View {
	v, ok := a.gate.Active()
	if !ok {
		return ""
	}
	return v
}

func (a *App) getStatus() string {
	s := ""
	if snap := a.session.Current(); snap.Authenticated && snap.User != nil {
		s = snap.User.Email + " "
	}
	if v, ok := a.gate.Active(); ok {
		s = s + string(v)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// askPermission is the one-time capability prompt used by StoredPermissions.
// The answer is persisted by the caller, so the user is asked at most once
// per capability.
func (a *App) askPermission(c media.Capability) (bool, error) {
	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Allow access to %s? [y/N]", c), os.Stdout)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}
