package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type envConfig struct {
	ServerURL      string        `envconfig:"SERVER"`
	RequestTimeout time.Duration `envconfig:"TIMEOUT"`
	ExportDir      string        `envconfig:"EXPORT_DIR"`
}

func parseEnv(cfg *Config) error {
	var e envConfig
	if err := envconfig.Process("NOTEBOOK", &e); err != nil {
		return err
	}

	if e.ServerURL != "" {
		cfg.ServerURL = e.ServerURL
	}
	if e.RequestTimeout != 0 {
		cfg.RequestTimeout = e.RequestTimeout
	}
	if e.ExportDir != "" {
		cfg.ExportDir = e.ExportDir
	}
	return nil
}
