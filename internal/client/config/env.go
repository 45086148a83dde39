package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from TODOKEEPER_* environment
// variables. A .env file in the working directory is loaded first; a
// missing file is not an error. Delay variables accept time.ParseDuration
// syntax ("1500ms"); malformed values panic.
//
// Supported variables:
//
//	TODOKEEPER_DATABASE_PATH
//	TODOKEEPER_EMAIL_LOGIN_DELAY
//	TODOKEEPER_GOOGLE_LOGIN_DELAY
//	TODOKEEPER_GOOGLE_AUTH_MODE
//	TODOKEEPER_GOOGLE_CLIENT_ID
//	TODOKEEPER_GOOGLE_DEVICE_AUTH_URL
//	TODOKEEPER_GOOGLE_TOKEN_URL
//	TODOKEEPER_GOOGLE_SCOPE
//	TODOKEEPER_CAMERA_COMMAND
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("TODOKEEPER_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("TODOKEEPER_EMAIL_LOGIN_DELAY"); v != "" {
		cfg.EmailLoginDelay = mustParseDuration("TODOKEEPER_EMAIL_LOGIN_DELAY", v)
	}
	if v := os.Getenv("TODOKEEPER_GOOGLE_LOGIN_DELAY"); v != "" {
		cfg.GoogleLoginDelay = mustParseDuration("TODOKEEPER_GOOGLE_LOGIN_DELAY", v)
	}
	if v := os.Getenv("TODOKEEPER_GOOGLE_AUTH_MODE"); v != "" {
		cfg.GoogleAuthMode = v
	}
	if v := os.Getenv("TODOKEEPER_GOOGLE_CLIENT_ID"); v != "" {
		cfg.GoogleClientID = v
	}
	if v := os.Getenv("TODOKEEPER_GOOGLE_DEVICE_AUTH_URL"); v != "" {
		cfg.GoogleDeviceAuthURL = v
	}
	if v := os.Getenv("TODOKEEPER_GOOGLE_TOKEN_URL"); v != "" {
		cfg.GoogleTokenURL = v
	}
	if v := os.Getenv("TODOKEEPER_GOOGLE_SCOPE"); v != "" {
		cfg.GoogleScope = v
	}
	if v := os.Getenv("TODOKEEPER_CAMERA_COMMAND"); v != "" {
		cfg.CameraCommand = v
	}
}

func mustParseDuration(name, value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	return d
}
