package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"cmd"}, args...)
}

func TestParseJson_NoConfigFlagLeavesConfigUntouched(t *testing.T) {
	withArgs(t)

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg

	parseJson(cfg)
	assert.Equal(t, before, *cfg)
}

func TestParseJson_OverlaysGivenFields(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"database_path":      "/tmp/json.db",
		"email_login_delay":  "2s",
		"google_login_delay": int(750 * time.Millisecond),
		"google_auth_mode":   "device",
		"google_client_id":   "client-123",
		"camera_command":     "grab.sh",
	})
	withArgs(t, "-c", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "/tmp/json.db", cfg.DatabasePath)
	assert.Equal(t, 2*time.Second, cfg.EmailLoginDelay)
	assert.Equal(t, 750*time.Millisecond, cfg.GoogleLoginDelay)
	assert.Equal(t, "device", cfg.GoogleAuthMode)
	assert.Equal(t, "client-123", cfg.GoogleClientID)
	assert.Equal(t, "grab.sh", cfg.CameraCommand)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "https://oauth2.googleapis.com/token", cfg.GoogleTokenURL)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "absent.json"))

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseJson(cfg) })
}

func TestParseJson_MalformedFilePanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	withArgs(t, "-c", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseJson(cfg) })
}
