package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/artkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   sqlite database path (default from Config)
//	-u string   base URL of the image generation service
//	-m string   model identifier
//	-b string   blob backend, "sqlite" or "s3"
//	-t int      per-attempt request timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-u", "-m", "-b", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite database path")
	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "image generation service base URL")
	fs.StringVar(&cfg.Model, "m", cfg.Model, "model identifier")
	backend := fs.String("b", string(cfg.BlobBackend), "blob backend (sqlite or s3)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.BlobBackend = BlobBackend(*backend)
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
