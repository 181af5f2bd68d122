package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  shutdown_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/poems"
  max_conns: 10
  min_conns: 2
  auto_migrate: true

provider:
  base_url: "http://rae.local/api"
  timeout: "3s"

poems:
  default_author_id: "7b0a0f3c-7d59-4d38-9d0b-64f0b3b2a1c1"
  max_title_length: 200

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "postgres://u:p@localhost:5432/poems", cfg.Database.DSN)
	assert.EqualValues(t, 10, cfg.Database.MaxConns)
	assert.True(t, cfg.Database.AutoMigrate)

	assert.Equal(t, "http://rae.local/api", cfg.Provider.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)

	require.NotNil(t, cfg.Poems.DefaultAuthorID)
	assert.Equal(t, uuid.MustParse("7b0a0f3c-7d59-4d38-9d0b-64f0b3b2a1c1"), *cfg.Poems.DefaultAuthorID)
	assert.Equal(t, 200, cfg.Poems.MaxTitleLength)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	// Untouched sections fall back to defaults.
	assert.Equal(t, "*", cfg.CORS.AllowedOrigins)
	assert.Equal(t, 30, cfg.RateLimit.EnrichPerMinute)
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("PROVIDER_BASE_URL", "http://override/api")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "http://override/api", cfg.Provider.BaseURL)
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/poems")
	t.Setenv("CONFIG_PATH", "")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "https://rae-api.com/api", cfg.Provider.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	assert.Nil(t, cfg.Poems.DefaultAuthorID)
	assert.Equal(t, 500, cfg.Poems.MaxTitleLength)
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

func validConfig() Config {
	return Config{
		Server:    ServerConfig{Port: 4000},
		Database:  DatabaseConfig{DSN: "postgres://localhost/poems", MaxConns: 10, MinConns: 2},
		Provider:  ProviderConfig{BaseURL: "https://rae-api.com/api", Timeout: 10 * time.Second},
		Poems:     PoemsConfig{MaxTitleLength: 500},
		Log:       LogConfig{Level: "info", Format: "json"},
		RateLimit: RateLimitConfig{EnrichPerMinute: 30, CleanupInterval: time.Minute},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "min conns above max", mutate: func(c *Config) { c.Database.MinConns = 20 }, wantErr: true},
		{name: "empty provider url", mutate: func(c *Config) { c.Provider.BaseURL = "  " }, wantErr: true},
		{name: "zero provider timeout", mutate: func(c *Config) { c.Provider.Timeout = 0 }, wantErr: true},
		{name: "zero title length", mutate: func(c *Config) { c.Poems.MaxTitleLength = 0 }, wantErr: true},
		{name: "bad default author", mutate: func(c *Config) { c.Poems.DefaultAuthorIDRaw = "not-a-uuid" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimit.EnrichPerMinute = 0 }, wantErr: true},
		{name: "zero cleanup interval", mutate: func(c *Config) { c.RateLimit.CleanupInterval = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_ParsesDefaultAuthor(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	cfg := validConfig()
	cfg.Poems.DefaultAuthorIDRaw = " " + id.String() + " "

	require.NoError(t, cfg.Validate())
	require.NotNil(t, cfg.Poems.DefaultAuthorID)
	assert.Equal(t, id, *cfg.Poems.DefaultAuthorID)
}
