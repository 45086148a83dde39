// Package config loads runtime configuration for the todokeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables, optionally from a .env file (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string       path to the sqlite database file
//	-m string       google sign-in mode: stub or device
//	-e int          email login delay (milliseconds)
//	-g int          google login delay (milliseconds)
//	-camera string  external camera capture command
//
// # JSON schema
//
// The JSON loader uses timex.Duration for delays, so values can be either
// strings like "1500ms" or integer nanoseconds:
//
//	{
//	  "database_path": "/home/jane/.todokeeper/todokeeper.db",
//	  "email_login_delay": "1s",
//	  "google_login_delay": "1500ms",
//	  "google_auth_mode": "stub"
//	}
//
// Primary API
//
//   - type Config                     — the client's runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
