package config

import (
	"time"

	"github.com/dmitrijs2005/notebook/internal/timex"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envConfig holds the environment overrides. PORT is accepted as a
// shorthand for HTTP_ADDR.
type envConfig struct {
	HTTPAddr              string        `envconfig:"HTTP_ADDR"`
	Port                  string        `envconfig:"PORT"`
	DatabaseDSN           string        `envconfig:"DATABASE_DSN"`
	SecretKey             string        `envconfig:"SECRET"`
	TokenValidityDuration timex.Duration `envconfig:"JWT_EXPIRY"`
	BcryptCost            int           `envconfig:"BCRYPT_COST"`
	LogLevel              string        `envconfig:"LOG_LEVEL"`
	ShutdownTimeout       time.Duration `envconfig:"SHUTDOWN_TIMEOUT"`
	S3RootUser            string        `envconfig:"S3_ROOT_USER"`
	S3RootPassword        string        `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket              string        `envconfig:"S3_BUCKET"`
	S3Region              string        `envconfig:"S3_REGION"`
	S3BaseEndpoint        string        `envconfig:"S3_BASE_ENDPOINT"`
}

// loadDotEnv is a seam so tests don't pick up a developer's .env file.
var loadDotEnv = func() { _ = godotenv.Load() }

// parseEnv overlays environment variables. HTTP_ADDR wins over PORT.
func parseEnv(config *Config) error {
	loadDotEnv()

	var e envConfig
	if err := envconfig.Process("", &e); err != nil {
		return err
	}

	if e.Port != "" {
		config.HTTPAddr = ":" + e.Port
	}
	setString(&config.HTTPAddr, e.HTTPAddr)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	if e.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = e.TokenValidityDuration.Duration
	}
	if e.BcryptCost != 0 {
		config.BcryptCost = e.BcryptCost
	}
	setString(&config.LogLevel, e.LogLevel)
	if e.ShutdownTimeout != 0 {
		config.ShutdownTimeout = e.ShutdownTimeout
	}
	setString(&config.S3RootUser, e.S3RootUser)
	setString(&config.S3RootPassword, e.S3RootPassword)
	setString(&config.S3Bucket, e.S3Bucket)
	setString(&config.S3Region, e.S3Region)
	setString(&config.S3BaseEndpoint, e.S3BaseEndpoint)

	return nil
}
