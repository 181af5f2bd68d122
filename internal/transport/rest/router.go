package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/poetry-backend/internal/config"
	"github.com/heartmarshall/poetry-backend/internal/transport/middleware"
)

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health *HealthHandler
	Poem   *PoemHandler
	Word   *WordHandler
	Author *AuthorHandler
}

// NewRouter mounts all routes and wraps them in the shared middleware.
// limiter guards the endpoint that calls the lexical provider.
func NewRouter(h Handlers, limiter *middleware.RateLimiter, cfg *config.Config, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Health.Root)
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /poems", h.Poem.Create)
	mux.HandleFunc("GET /poems", h.Poem.List)
	mux.HandleFunc("GET /poems/{id}", h.Poem.Get)

	enrich := http.HandlerFunc(h.Word.Enrich)
	mux.Handle("PATCH /words/{word}", limiter.Limit(cfg.RateLimit.EnrichPerMinute)(enrich))
	mux.HandleFunc("PATCH /words/{word}/clear", h.Word.Clear)
	mux.HandleFunc("GET /words/{word}/synonyms", h.Word.Synonyms)
	mux.HandleFunc("GET /words/{word}/antonyms", h.Word.Antonyms)
	mux.HandleFunc("GET /words/{word}/senses", h.Word.Senses)
	mux.HandleFunc("GET /words/{word}/origin", h.Word.Origin)
	mux.HandleFunc("GET /words/{word}/verbal-form", h.Word.VerbalForm)

	mux.HandleFunc("POST /authors", h.Author.Create)
	mux.HandleFunc("GET /authors", h.Author.List)
	mux.HandleFunc("GET /authors/{id}", h.Author.Get)
	mux.HandleFunc("PUT /authors/{id}", h.Author.Update)
	mux.HandleFunc("DELETE /authors/{id}", h.Author.Delete)
	mux.HandleFunc("GET /authors/{id}/poems", h.Author.Poems)

	return middleware.Default(logger, cfg.CORS, cfg.Server.MaxBodyBytes)(mux)
}
