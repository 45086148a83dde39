package config

import "time"

// Authentication modes for the Google sign-in flow.
const (
	GoogleAuthStub   = "stub"
	GoogleAuthDevice = "device"
)

// Config holds runtime settings for the todokeeper CLI.
//
// DatabasePath is empty by default; the application resolves it to a file
// inside the per-user data directory at startup. Delays model the latency
// of the corresponding sign-in flow when the stub identity provider is used.
type Config struct {
	DatabasePath string

	EmailLoginDelay  time.Duration
	GoogleLoginDelay time.Duration

	GoogleAuthMode      string
	GoogleClientID      string
	GoogleDeviceAuthURL string
	GoogleTokenURL      string
	GoogleScope         string

	CameraCommand string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = ""
	c.EmailLoginDelay = 1 * time.Second
	c.GoogleLoginDelay = 1500 * time.Millisecond
	c.GoogleAuthMode = GoogleAuthStub
	c.GoogleClientID = ""
	c.GoogleDeviceAuthURL = "https://oauth2.googleapis.com/device/code"
	c.GoogleTokenURL = "https://oauth2.googleapis.com/token"
	c.GoogleScope = "openid email profile"
	c.CameraCommand = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
