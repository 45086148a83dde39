package profile

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/todokeeper/internal/client/media"
	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE settings (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakePerms struct {
	granted map[media.Capability]bool
	asked   []media.Capability
}

func (f *fakePerms) EnsureGranted(_ context.Context, c media.Capability) error {
	f.asked = append(f.asked, c)
	if f.granted[c] {
		return nil
	}
	return media.ErrPermissionDenied
}

func allGranted() *fakePerms {
	return &fakePerms{granted: map[media.Capability]bool{
		media.CapabilityCamera:  true,
		media.CapabilityLibrary: true,
	}}
}

type fakePicker struct {
	libraryPath string
	libraryErr  error
	cameraPath  string
	cameraErr   error
}

func (f *fakePicker) PickFromLibrary(context.Context) (string, error) {
	return f.libraryPath, f.libraryErr
}

func (f *fakePicker) CaptureFromCamera(context.Context) (string, error) {
	return f.cameraPath, f.cameraErr
}

func newService(t *testing.T) (*Service, kv.Repository, *fakePerms, *fakePicker) {
	t.Helper()
	repo := kv.NewSQLiteRepository(setupDB(t))
	perms := allGranted()
	picker := &fakePicker{}
	return NewService(repo, perms, picker, testLogger()), repo, perms, picker
}

func TestService_LoadEmptyStore(t *testing.T) {
	s, _, _, _ := newService(t)

	p, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Profile{}, p)
}

func TestService_SaveAndReload(t *testing.T) {
	s, repo, _, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "Jane", "keeps lists"))
	assert.Equal(t, Profile{DisplayName: "Jane", Bio: "keeps lists"}, s.Current())

	s2 := NewService(repo, allGranted(), &fakePicker{}, testLogger())
	p, err := s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane", p.DisplayName)
	assert.Equal(t, "keeps lists", p.Bio)
}

func TestService_SaveLastWriteWins(t *testing.T) {
	s, _, _, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "Jane", "first"))
	require.NoError(t, s.Save(ctx, "Jane", "second"))

	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", p.Bio)
}

func TestService_SaveReportsBothWriteErrors(t *testing.T) {
	db := setupDB(t)
	s := NewService(kv.NewSQLiteRepository(db), allGranted(), &fakePicker{}, testLogger())
	require.NoError(t, db.Close())

	err := s.Save(context.Background(), "Jane", "bio")
	require.Error(t, err)
	assert.Equal(t, Profile{}, s.Current())
}

func TestService_SetPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and confirms", func(t *testing.T) {
		s, repo, _, _ := newService(t)

		ok, err := s.SetPhoto(ctx, "/photos/a.jpg")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "/photos/a.jpg", s.Current().ImagePath)

		v, err := repo.Get(ctx, "profile-image-path")
		require.NoError(t, err)
		assert.Equal(t, "/photos/a.jpg", string(v))
	})

	t.Run("empty path leaves store untouched", func(t *testing.T) {
		s, repo, _, _ := newService(t)

		for _, path := range []string{"", "   "} {
			ok, err := s.SetPhoto(ctx, path)
			require.NoError(t, err)
			assert.False(t, ok)
		}
		assert.Empty(t, s.Current().ImagePath)

		v, err := repo.Get(ctx, "profile-image-path")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("write failure reverts the optimistic value", func(t *testing.T) {
		db := setupDB(t)
		s := NewService(kv.NewSQLiteRepository(db), allGranted(), &fakePicker{}, testLogger())
		ok, err := s.SetPhoto(ctx, "/photos/before.jpg")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, db.Close())

		ok, err = s.SetPhoto(ctx, "/photos/after.jpg")
		require.Error(t, err)
		assert.False(t, ok)
		assert.Equal(t, "/photos/before.jpg", s.Current().ImagePath)
	})
}

func TestService_ClearPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("removes key and memory value", func(t *testing.T) {
		s, repo, _, _ := newService(t)
		ok, err := s.SetPhoto(ctx, "/photos/a.jpg")
		require.NoError(t, err)
		require.True(t, ok)

		s.ClearPhoto(ctx)
		assert.Empty(t, s.Current().ImagePath)

		v, err := repo.Get(ctx, "profile-image-path")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("storage failure still clears memory", func(t *testing.T) {
		db := setupDB(t)
		s := NewService(kv.NewSQLiteRepository(db), allGranted(), &fakePicker{}, testLogger())
		ok, err := s.SetPhoto(ctx, "/photos/a.jpg")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, db.Close())

		s.ClearPhoto(ctx)
		assert.Empty(t, s.Current().ImagePath)
	})
}

func TestService_UpdatePhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("library source stores the picked path", func(t *testing.T) {
		s, _, perms, picker := newService(t)
		picker.libraryPath = "/photos/lib.jpg"

		path, err := s.UpdatePhoto(ctx, SourceLibrary)
		require.NoError(t, err)
		assert.Equal(t, "/photos/lib.jpg", path)
		assert.Equal(t, "/photos/lib.jpg", s.Current().ImagePath)
		assert.Contains(t, perms.asked, media.CapabilityCamera)
		assert.Contains(t, perms.asked, media.CapabilityLibrary)
	})

	t.Run("camera source stores the captured path", func(t *testing.T) {
		s, _, _, picker := newService(t)
		picker.cameraPath = "/photos/cam.jpg"

		path, err := s.UpdatePhoto(ctx, SourceCamera)
		require.NoError(t, err)
		assert.Equal(t, "/photos/cam.jpg", path)
		assert.Equal(t, "/photos/cam.jpg", s.Current().ImagePath)
	})

	t.Run("denied permission aborts before picking", func(t *testing.T) {
		s, repo, perms, picker := newService(t)
		perms.granted[media.CapabilityCamera] = false
		picker.libraryPath = "/photos/lib.jpg"

		_, err := s.UpdatePhoto(ctx, SourceLibrary)
		require.ErrorIs(t, err, media.ErrPermissionDenied)

		v, err := repo.Get(ctx, "profile-image-path")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("cancellation leaves prior photo untouched", func(t *testing.T) {
		s, _, _, picker := newService(t)
		ok, err := s.SetPhoto(ctx, "/photos/keep.jpg")
		require.NoError(t, err)
		require.True(t, ok)

		picker.libraryErr = media.ErrCancelled
		_, err = s.UpdatePhoto(ctx, SourceLibrary)
		require.ErrorIs(t, err, media.ErrCancelled)
		assert.Equal(t, "/photos/keep.jpg", s.Current().ImagePath)
	})

	t.Run("no image from picker", func(t *testing.T) {
		s, _, _, picker := newService(t)
		picker.cameraErr = media.ErrNoImage

		_, err := s.UpdatePhoto(ctx, SourceCamera)
		require.ErrorIs(t, err, media.ErrNoImage)
		assert.Empty(t, s.Current().ImagePath)
	})
}
