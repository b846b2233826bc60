package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, env, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoadConfigFor(t *testing.T) {
	t.Run("applies defaults and converts durations", func(t *testing.T) {
		dir := writeConfig(t, Test, `
auth:
  jwtSecret: a-test-secret
request:
  expireAfter: 30
  sweepInterval: 20
`)

		cfg, err := LoadConfigFor(Test, dir)
		require.NoError(t, err)

		assert.Equal(t, Test, cfg.Environment)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, int64(1000), cfg.Ledger.WelcomeBonus)
		assert.Equal(t, 200, cfg.Ledger.HistoryMaxLimit)
		assert.Equal(t, int64(50), cfg.Request.MinMB)
		assert.Equal(t, 30*time.Minute, cfg.Request.ExpireAfter)
		assert.Equal(t, 20*time.Second, cfg.Request.SweepInterval)
		assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
		assert.Equal(t, "hotfinet.notifications", cfg.Notification.Stream)
		assert.False(t, cfg.UsesRedis())
	})

	t.Run("expiry is off unless configured", func(t *testing.T) {
		dir := writeConfig(t, Test, "auth:\n  jwtSecret: a-test-secret\n")

		cfg, err := LoadConfigFor(Test, dir)
		require.NoError(t, err)
		assert.Zero(t, cfg.Request.ExpireAfter)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := writeConfig(t, Test, "auth:\n  jwtSecret: from-file\n")
		t.Setenv("HN_AUTH_JWTSECRET", "from-env")
		t.Setenv("HN_LEDGER_WELCOMEBONUS", "250")

		cfg, err := LoadConfigFor(Test, dir)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
		assert.Equal(t, int64(250), cfg.Ledger.WelcomeBonus)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFor(Test, t.TempDir())
		assert.Error(t, err)
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		dir := writeConfig(t, Test, "auth:\n  jwtSecret: a-test-secret\nrequest:\n  minMB: 10\n")

		_, err := LoadConfigFor(Test, dir)
		assert.ErrorContains(t, err, "request.minMB")
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: Development,
			Server:      ServerConfig{Port: 8080},
			Auth:        AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
			Ledger:      LedgerConfig{WelcomeBonus: 1000},
			Request:     RequestConfig{MinMB: 50},
			Redis:       RedisConfig{Addr: "localhost:6379"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server port"},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: "jwtSecret"},
		{name: "short production secret", mutate: func(c *Config) { c.Environment = Production }, wantErr: "32 bytes"},
		{name: "negative bonus", mutate: func(c *Config) { c.Ledger.WelcomeBonus = -1 }, wantErr: "welcomeBonus"},
		{name: "minimum below floor", mutate: func(c *Config) { c.Request.MinMB = 49 }, wantErr: "minMB"},
		{
			name: "stream without name",
			mutate: func(c *Config) {
				c.Notification.StreamEnabled = true
			},
			wantErr: "notification.stream",
		},
		{
			name: "cache without redis",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Redis.Addr = ""
			},
			wantErr: "redis.addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
