package poem

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/poetry-backend/internal/config"
	"github.com/heartmarshall/poetry-backend/internal/domain"
)

// MaxWordLength is the longest token a poem may contain.
const MaxWordLength = 200

// ErrIngestion is returned when a poem could not be stored. The storage
// cause is logged and deliberately not wrapped.
var ErrIngestion = errors.New("poem ingestion failed")

type poemRepo interface {
	CreateWithTree(ctx context.Context, p *domain.Poem, dictIDs map[string]uuid.UUID) error
	GetTree(ctx context.Context, id uuid.UUID) (*domain.Poem, error)
	List(ctx context.Context, f domain.PoemFilter) ([]domain.PoemSummary, error)
}

type dictionaryRepo interface {
	Upsert(ctx context.Context, texts []string) (map[string]uuid.UUID, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service decomposes poems on ingestion and reconstructs them on read.
type Service struct {
	log   *slog.Logger
	tx    txManager
	poems poemRepo
	words dictionaryRepo
	cfg   config.PoemsConfig
}

// NewService creates a new Poem service.
func NewService(
	log *slog.Logger,
	tx txManager,
	poems poemRepo,
	words dictionaryRepo,
	cfg config.PoemsConfig,
) *Service {
	return &Service{
		log:   log.With("service", "poem"),
		tx:    tx,
		poems: poems,
		words: words,
		cfg:   cfg,
	}
}
