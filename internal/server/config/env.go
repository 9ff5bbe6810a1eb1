package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig lists the variables a hosting platform is expected to inject.
// VERCEL_ENV is honoured as a fallback deployment-mode flag.
type envConfig struct {
	Mode        string `env:"BLUECUP_ENV"`
	VercelEnv   string `env:"VERCEL_ENV"`
	DatabaseURL string `env:"DATABASE_URL"`
	SecretKey   string `env:"BLUECUP_SECRET_KEY"`
	HTTPAddr    string `env:"BLUECUP_HTTP_ADDR"`
	LogLevel    string `env:"BLUECUP_LOG_LEVEL"`
}

// parseEnv overlays non-empty environment variables onto config. A nil
// environ reads the process environment.
func parseEnv(config *Config, environ map[string]string) error {
	e := envConfig{}
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if e.Mode == "" {
		e.Mode = e.VercelEnv
	}
	setString(&config.Mode, e.Mode)
	setString(&config.DatabaseDSN, e.DatabaseURL)
	setString(&config.SecretKey, e.SecretKey)
	setString(&config.EndpointAddrHTTP, e.HTTPAddr)
	setString(&config.LogLevel, e.LogLevel)
	return nil
}
