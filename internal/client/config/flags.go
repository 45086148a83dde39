package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string       path to the sqlite database file
//	-m string       google sign-in mode: stub or device
//	-e int          email login delay in milliseconds
//	-g int          google login delay in milliseconds
//	-camera string  external camera capture command
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-m", "-e", "-g", "-camera"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the sqlite database file")
	fs.StringVar(&cfg.GoogleAuthMode, "m", cfg.GoogleAuthMode, "google sign-in mode (stub or device)")
	emailDelay := fs.Int("e", int(cfg.EmailLoginDelay.Milliseconds()), "email login delay (in milliseconds)")
	googleDelay := fs.Int("g", int(cfg.GoogleLoginDelay.Milliseconds()), "google login delay (in milliseconds)")
	fs.StringVar(&cfg.CameraCommand, "camera", cfg.CameraCommand, "external camera capture command")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.EmailLoginDelay = time.Duration(*emailDelay) * time.Millisecond
	cfg.GoogleLoginDelay = time.Duration(*googleDelay) * time.Millisecond
}
