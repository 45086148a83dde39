package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
	"github.com/dmitrijs2005/todokeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify delays either as strings like "1500ms"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabasePath        string          `json:"database_path"`
	EmailLoginDelay     *timex.Duration `json:"email_login_delay"`
	GoogleLoginDelay    *timex.Duration `json:"google_login_delay"`
	GoogleAuthMode      string          `json:"google_auth_mode"`
	GoogleClientID      string          `json:"google_client_id"`
	GoogleDeviceAuthURL string          `json:"google_device_auth_url"`
	GoogleTokenURL      string          `json:"google_token_url"`
	GoogleScope         string          `json:"google_scope"`
	CameraCommand       string          `json:"camera_command"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c / -config flags via
// flagx.ConfigFileFlags(); when neither flag is given no JSON is loaded.
// Read and unmarshal errors panic (caller should recover if desired).
// Only fields present in the file override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.EmailLoginDelay != nil {
		cfg.EmailLoginDelay = time.Duration(jc.EmailLoginDelay.Duration)
	}
	if jc.GoogleLoginDelay != nil {
		cfg.GoogleLoginDelay = time.Duration(jc.GoogleLoginDelay.Duration)
	}
	if jc.GoogleAuthMode != "" {
		cfg.GoogleAuthMode = jc.GoogleAuthMode
	}
	if jc.GoogleClientID != "" {
		cfg.GoogleClientID = jc.GoogleClientID
	}
	if jc.GoogleDeviceAuthURL != "" {
		cfg.GoogleDeviceAuthURL = jc.GoogleDeviceAuthURL
	}
	if jc.GoogleTokenURL != "" {
		cfg.GoogleTokenURL = jc.GoogleTokenURL
	}
	if jc.GoogleScope != "" {
		cfg.GoogleScope = jc.GoogleScope
	}
	if jc.CameraCommand != "" {
		cfg.CameraCommand = jc.CameraCommand
	}
}
