package config

import "time"

// BlobBackend selects where binary payloads live.
type BlobBackend string

const (
	BlobBackendSQLite BlobBackend = "sqlite"
	BlobBackendS3     BlobBackend = "s3"
)

// Config holds runtime settings for the studio CLI.
//
// Fields:
//   - DatabaseDSN: sqlite DSN for the metadata and blob tables.
//   - APIBaseURL: base URL of the image generation service.
//   - Model: model identifier appended to generateContent requests.
//   - BlobBackend: "sqlite" (default) or "s3".
//   - S3*: bucket settings, used only when BlobBackend is "s3".
//   - RequestTimeout: per-generation-attempt deadline.
type Config struct {
	DatabaseDSN    string
	APIBaseURL     string
	Model          string
	BlobBackend    BlobBackend
	S3Region       string
	S3Bucket       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "artkeeper.db"
	c.APIBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	c.Model = "gemini-2.5-flash-image"
	c.BlobBackend = BlobBackendSQLite
	c.RequestTimeout = 2 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
