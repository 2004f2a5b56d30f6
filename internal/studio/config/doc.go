// Package config loads runtime configuration for the studio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   sqlite database path
//	-u string   image generation service base URL
//	-m string   model identifier
//	-b string   blob backend, "sqlite" or "s3"
//	-t int      per-attempt request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so the value can be
// either a string like "90s" or integer nanoseconds:
//
//	{
//	  "database_dsn": "artkeeper.db",
//	  "api_base_url": "https://generativelanguage.googleapis.com/v1beta",
//	  "model": "gemini-2.5-flash-image",
//	  "blob_backend": "sqlite",
//	  "request_timeout": "2m"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
