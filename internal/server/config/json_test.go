package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bluecup/internal/server/models"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"mode":                      "production",
		"endpoint_addr_http":        "www.example:9000",
		"database_dsn":              "postgres://u:p@db/bluecup",
		"secret_key":                "my_secret_key",
		"session_validity_duration": "2h",
		"secure_cookie":             true,
		"bootstrap_email":           "",
		"reward_tiers": []map[string]any{
			{"name": "Starter", "hours": 1, "description": "first hour"},
		},
		"events": []map[string]any{
			{"id": 7, "title": "Food Bank", "date": "2024-05-01", "location": "Depot"},
		},
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg, []string{"-config", path})

		assert.Equal(t, "production", cfg.Mode)
		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres://u:p@db/bluecup", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 2*time.Hour, cfg.SessionValidityDuration)
		assert.True(t, cfg.SecureCookie)
		assert.Equal(t, "bluecup.db", cfg.SQLitePath, "absent field keeps default")
		assert.Equal(t, "", cfg.BootstrapEmail, "explicit empty string disables bootstrap")
		assert.Equal(t, "admin123", cfg.BootstrapPassword)
		assert.False(t, cfg.BootstrapEnabled())
		assert.Equal(t, []models.RewardTier{{Name: "Starter", Hours: 1, Description: "first hour"}}, cfg.RewardTiers)
		assert.Equal(t, []models.Event{{ID: 7, Title: "Food Bank", Date: "2024-05-01", Location: "Depot"}}, cfg.Events)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{
			EndpointAddrHTTP:        "defaults:1234",
			SQLitePath:              "vault.db",
			SecretKey:               "key",
			SessionValidityDuration: 3 * time.Minute,
		}
		parseJson(cfg, []string{"-a", ":1"})

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "vault.db", cfg.SQLitePath)
		assert.Equal(t, "key", cfg.SecretKey)
		assert.Equal(t, 3*time.Minute, cfg.SessionValidityDuration)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", bad}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg, []string{"-c", filepath.Join(dir, "absent.json")}) })
	})
}
