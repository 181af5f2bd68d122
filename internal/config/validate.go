package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if strings.TrimSpace(c.Provider.BaseURL) == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be > 0 (got %s)", c.Provider.Timeout)
	}

	if err := c.Poems.validate(); err != nil {
		return fmt.Errorf("poems: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.RateLimit.EnrichPerMinute <= 0 {
		return fmt.Errorf("rate_limit.enrich_per_minute must be > 0 (got %d)", c.RateLimit.EnrichPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (p *PoemsConfig) validate() error {
	if p.MaxTitleLength <= 0 {
		return fmt.Errorf("max_title_length must be > 0 (got %d)", p.MaxTitleLength)
	}

	raw := strings.TrimSpace(p.DefaultAuthorIDRaw)
	if raw == "" {
		p.DefaultAuthorID = nil
		return nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("default_author_id: invalid uuid %q: %w", raw, err)
	}
	p.DefaultAuthorID = &id

	return nil
}
