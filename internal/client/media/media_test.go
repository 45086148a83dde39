package media

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) kv.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE settings (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return kv.NewSQLiteRepository(db)
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not-really-a-jpeg"), 0o600))
	return path
}

func TestStoredPermissions_AsksOnceAndPersistsGrant(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	asks := 0
	p := &StoredPermissions{
		Repo: repo,
		Ask:  func(c Capability) (bool, error) { asks++; return true, nil },
	}

	require.NoError(t, p.EnsureGranted(ctx, CapabilityCamera))
	require.NoError(t, p.EnsureGranted(ctx, CapabilityCamera))
	assert.Equal(t, 1, asks, "grant must be asked once per capability")

	stored, err := repo.Get(ctx, "perm-camera")
	require.NoError(t, err)
	assert.Equal(t, "granted", string(stored))
}

func TestStoredPermissions_DenialIsTerminal(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	asks := 0
	p := &StoredPermissions{
		Repo: repo,
		Ask:  func(c Capability) (bool, error) { asks++; return false, nil },
	}

	require.ErrorIs(t, p.EnsureGranted(ctx, CapabilityLibrary), ErrPermissionDenied)
	require.ErrorIs(t, p.EnsureGranted(ctx, CapabilityLibrary), ErrPermissionDenied)
	assert.Equal(t, 1, asks, "recorded denial must not re-prompt")
}

func TestStoredPermissions_IndependentCapabilities(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p := &StoredPermissions{
		Repo: repo,
		Ask:  func(c Capability) (bool, error) { return c == CapabilityLibrary, nil },
	}

	require.NoError(t, p.EnsureGranted(ctx, CapabilityLibrary))
	require.ErrorIs(t, p.EnsureGranted(ctx, CapabilityCamera), ErrPermissionDenied)
}

func TestDevicePicker_PickFromLibrary(t *testing.T) {
	dir := t.TempDir()
	existing := writeImage(t, dir, "avatar.jpg")

	tests := []struct {
		name    string
		answer  string
		want    string
		wantErr error
	}{
		{name: "existing file", answer: existing, want: existing},
		{name: "surrounding whitespace trimmed", answer: "  " + existing + "  ", want: existing},
		{name: "empty answer is cancel", answer: "", wantErr: ErrCancelled},
		{name: "blank answer is cancel", answer: "   ", wantErr: ErrCancelled},
		{name: "missing file", answer: filepath.Join(dir, "nope.jpg"), wantErr: ErrNoImage},
		{name: "directory is not an image", answer: dir, wantErr: ErrNoImage},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := &DevicePicker{Prompt: func(string) (string, error) { return tt.answer, nil }}

			got, err := p.PickFromLibrary(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDevicePicker_CaptureFromCamera_RunsCommand(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "frame.jpg")

	p := &DevicePicker{
		// cp <src> <out> stands in for a real capture command.
		CameraCommand: "cp " + src,
		PhotosDir:     dir,
	}

	got, err := p.CaptureFromCamera(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(got))

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDevicePicker_CaptureFromCamera_NoCommand(t *testing.T) {
	p := &DevicePicker{PhotosDir: t.TempDir()}

	_, err := p.CaptureFromCamera(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not configured")
}

func TestDevicePicker_CaptureFromCamera_EmptyOutputIsNoImage(t *testing.T) {
	dir := t.TempDir()

	p := &DevicePicker{
		// touch creates the output file but leaves it empty.
		CameraCommand: "touch",
		PhotosDir:     dir,
	}

	_, err := p.CaptureFromCamera(context.Background())
	require.ErrorIs(t, err, ErrNoImage)
}
