// Package config loads runtime configuration for the notebook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: NOTEBOOK_SERVER, NOTEBOOK_TIMEOUT, NOTEBOOK_EXPORT_DIR.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the notebook server
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:4000",
//	  "request_timeout": "10s",
//	  "export_dir": "exports"
//	}
package config
