// Package rae fetches lexical payloads from the RAE dictionary API.
// The payload is returned verbatim; callers cache it and project it later.
package rae

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/poetry-backend/internal/config"
	"github.com/heartmarshall/poetry-backend/internal/domain"
)

const (
	defaultBaseURL = "https://rae-api.com/api"
	defaultTimeout = 10 * time.Second

	maxBodyBytes = 4 << 20
)

// Provider fetches word payloads from the RAE API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from configuration. Zero values fall back
// to the public API URL and a 10s timeout.
func NewProvider(cfg config.ProviderConfig, logger *slog.Logger) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "rae"),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return NewProvider(config.ProviderConfig{BaseURL: baseURL}, logger)
}

// FetchWord returns the raw payload for word. Any failure, including a
// response document carrying an "error" field, is reported as
// domain.ErrProvider. There is no retry.
func (p *Provider) FetchWord(ctx context.Context, word string) (json.RawMessage, error) {
	reqURL := p.baseURL + "/words/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "rae request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("rae: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("rae: %w", ctx.Err())
		}
		p.log.ErrorContext(ctx, "rae request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("rae: request failed: %w: %w", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("rae: read body: %w: %w", domain.ErrProvider, err)
	}

	// The API reports misses as a JSON document with an "error" field,
	// sometimes alongside a non-2xx status.
	if msg := gjson.GetBytes(body, "error"); msg.Exists() && msg.Type != gjson.Null {
		p.log.WarnContext(ctx, "rae error payload",
			slog.String("word", word),
			slog.Int("status", resp.StatusCode),
			slog.String("error", msg.String()),
		)
		return nil, fmt.Errorf("rae: %s: %w", msg.String(), domain.ErrProvider)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("rae: unexpected status %d: %w", resp.StatusCode, domain.ErrProvider)
	}

	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, fmt.Errorf("rae: response is not a JSON object: %w", domain.ErrProvider)
	}

	p.log.DebugContext(ctx, "rae response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("meanings", int(gjson.GetBytes(body, "data.meanings.#").Int())),
	)

	return json.RawMessage(body), nil
}
