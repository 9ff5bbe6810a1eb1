// Package config handles configuration for the BlueCup server and CLI,
// including defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/bluecup/internal/common"
	"github.com/dmitrijs2005/bluecup/internal/server/models"
)

// Config holds runtime settings for the BlueCup server.
//
// Fields:
//   - Mode: deployment mode; "production" selects PostgreSQL, anything else SQLite.
//   - EndpointAddrHTTP: bind address for the HTTP server.
//   - DatabaseDSN: PostgreSQL URL used in production mode.
//   - SQLitePath: database file used outside production.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - SessionValidityDuration: lifetime of a login session.
//   - SecureCookie: mark the session cookie Secure (HTTPS only).
//   - BootstrapEmail / BootstrapPassword: fixed admin credential, see below.
//   - RewardTiers: ascending list of reward thresholds.
//   - Events: static event fixtures.
//
// The bootstrap credential is a plain value shipped with the configuration and
// is therefore readable by anyone who can read the config. Leaving either
// field empty disables it.
type Config struct {
	Mode                    string
	EndpointAddrHTTP        string
	DatabaseDSN             string
	SQLitePath              string
	SecretKey               string
	SessionValidityDuration time.Duration
	SecureCookie            bool
	LogLevel                string
	BootstrapEmail          string
	BootstrapPassword       string
	RewardTiers             []models.RewardTier
	Events                  []models.Event
}

// DefaultRewardTiers are the tiers used when the config file does not list any.
func DefaultRewardTiers() []models.RewardTier {
	return []models.RewardTier{
		{Name: "Bronze Badge", Hours: 10, Description: "Earned at 10 hours"},
		{Name: "Silver Badge", Hours: 25, Description: "Earned at 25 hours"},
		{Name: "Gold Badge", Hours: 50, Description: "Earned at 50 hours"},
		{Name: "Platinum Badge", Hours: 100, Description: "Earned at 100 hours"},
	}
}

// DefaultEvents are the fixtures used when the config file does not list any.
func DefaultEvents() []models.Event {
	return []models.Event{
		{ID: 1, Title: "Community Cleanup", Date: "2024-04-01", Location: "Downtown"},
		{ID: 2, Title: "Voter Registration Drive", Date: "2024-04-15", Location: "City Hall"},
	}
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey and the bootstrap credential are insecure and must be
// overridden outside local development.
func (c *Config) LoadDefaults() {
	c.Mode = common.ModeDevelopment
	c.EndpointAddrHTTP = ":5000"
	c.DatabaseDSN = ""
	c.SQLitePath = "bluecup.db"
	c.SecretKey = "your-secret-key"
	c.SessionValidityDuration = 24 * time.Hour
	c.SecureCookie = false
	c.LogLevel = "info"
	c.BootstrapEmail = "admin@example.com"
	c.BootstrapPassword = "admin123"
	c.RewardTiers = DefaultRewardTiers()
	c.Events = DefaultEvents()
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
// It panics on unreadable JSON, malformed environment or bad flags.
func LoadConfig() *Config {
	return load(os.Args[1:], nil)
}

// LoadArgs is LoadConfig for an explicit argument list, used by tools that
// build their own command line.
func LoadArgs(args []string) *Config {
	return load(args, nil)
}

func load(args []string, environ map[string]string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	if err := parseEnv(cfg, environ); err != nil {
		panic(err)
	}
	parseFlags(cfg, args)
	return cfg
}

// IsProduction reports whether the networked store should be used.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Mode), common.ModeProduction)
}

// BootstrapEnabled reports whether the fixed admin credential is accepted.
func (c *Config) BootstrapEnabled() bool {
	return c.BootstrapEmail != "" && c.BootstrapPassword != ""
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.SessionValidityDuration <= 0 {
		errs = append(errs, errors.New("session validity must be positive"))
	}
	if c.IsProduction() && strings.TrimSpace(c.DatabaseDSN) == "" {
		errs = append(errs, errors.New("database DSN is required in production mode"))
	}
	if !c.IsProduction() && strings.TrimSpace(c.SQLitePath) == "" {
		errs = append(errs, errors.New("sqlite path is required outside production mode"))
	}
	if err := ValidateRewardTiers(c.RewardTiers); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateRewardTiers requires named tiers with non-negative thresholds in
// non-decreasing order.
func ValidateRewardTiers(tiers []models.RewardTier) error {
	prev := 0.0
	for i, t := range tiers {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("reward tier %d: name is required", i)
		}
		if t.Hours < 0 {
			return fmt.Errorf("reward tier %q: negative threshold", t.Name)
		}
		if i > 0 && t.Hours < prev {
			return fmt.Errorf("reward tier %q: thresholds must be ascending", t.Name)
		}
		prev = t.Hours
	}
	return nil
}
