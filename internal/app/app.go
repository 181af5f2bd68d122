package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/poetry-backend/internal/adapter/postgres"
	authorrepo "github.com/heartmarshall/poetry-backend/internal/adapter/postgres/author"
	dictrepo "github.com/heartmarshall/poetry-backend/internal/adapter/postgres/dictionary"
	poemrepo "github.com/heartmarshall/poetry-backend/internal/adapter/postgres/poem"
	"github.com/heartmarshall/poetry-backend/internal/adapter/provider/rae"
	"github.com/heartmarshall/poetry-backend/internal/config"
	"github.com/heartmarshall/poetry-backend/internal/service/author"
	"github.com/heartmarshall/poetry-backend/internal/service/lexicon"
	"github.com/heartmarshall/poetry-backend/internal/service/poem"
	"github.com/heartmarshall/poetry-backend/internal/transport/middleware"
	"github.com/heartmarshall/poetry-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, assembles the HTTP stack and serves until ctx is cancelled
// or SIGINT/SIGTERM arrives, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	handler, cleanup := NewHandler(cfg, pool, logger)
	defer cleanup()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}

// NewHandler wires repositories, the lexical provider, services and REST
// handlers over pool. The returned cleanup stops background workers and
// must be called once the handler is no longer served.
func NewHandler(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (http.Handler, func()) {
	txm := postgres.NewTxManager(pool)

	// Repositories.
	authors := authorrepo.New(pool)
	words := dictrepo.New(pool)
	poems := poemrepo.New(pool)

	// External providers.
	provider := rae.NewProvider(cfg.Provider, logger)

	// Services.
	poemService := poem.NewService(logger, txm, poems, words, cfg.Poems)
	lexiconService := lexicon.NewService(logger, words, provider)
	authorService := author.NewService(logger, authors, poems)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	handler := rest.NewRouter(rest.Handlers{
		Health: rest.NewHealthHandler(pool, BuildVersion()),
		Poem:   rest.NewPoemHandler(poemService, logger),
		Word:   rest.NewWordHandler(lexiconService, logger),
		Author: rest.NewAuthorHandler(authorService, logger),
	}, limiter, cfg, logger)

	return handler, limiter.Stop
}
