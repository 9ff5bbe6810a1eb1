package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bluecup/internal/flagx"
	"github.com/dmitrijs2005/bluecup/internal/server/models"
	"github.com/dmitrijs2005/bluecup/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted.
// Absent or empty fields leave the current value untouched; a present
// reward_tiers or events list replaces the default list entirely.
type JsonConfig struct {
	Mode                    string              `json:"mode"`
	EndpointAddrHTTP        string              `json:"endpoint_addr_http"`
	DatabaseDSN             string              `json:"database_dsn"`
	SQLitePath              string              `json:"sqlite_path"`
	SecretKey               string              `json:"secret_key"`
	SessionValidityDuration timex.Duration      `json:"session_validity_duration"`
	SecureCookie            *bool               `json:"secure_cookie"`
	LogLevel                string              `json:"log_level"`
	BootstrapEmail          *string             `json:"bootstrap_email"`
	BootstrapPassword       *string             `json:"bootstrap_password"`
	RewardTiers             []models.RewardTier `json:"reward_tiers"`
	Events                  []models.Event      `json:"events"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config in args. Without either flag nothing is loaded. An unreadable file
// or invalid JSON panics.
//
// The bootstrap fields are pointers so a file can disable the bootstrap
// account with an explicit empty string.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.Mode, c.Mode)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SQLitePath, c.SQLitePath)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)

	if c.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.SecureCookie != nil {
		config.SecureCookie = *c.SecureCookie
	}
	if c.BootstrapEmail != nil {
		config.BootstrapEmail = *c.BootstrapEmail
	}
	if c.BootstrapPassword != nil {
		config.BootstrapPassword = *c.BootstrapPassword
	}
	if c.RewardTiers != nil {
		config.RewardTiers = c.RewardTiers
	}
	if c.Events != nil {
		config.Events = c.Events
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
