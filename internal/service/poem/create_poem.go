package poem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

// CreatePoem parses text into stanzas, lines and words and stores the whole
// tree, with the dictionary upserts, in one transaction. Nothing is visible
// unless every row was written.
func (s *Service) CreatePoem(ctx context.Context, input CreatePoemInput) (uuid.UUID, error) {
	if err := input.Validate(s.cfg.MaxTitleLength); err != nil {
		return uuid.Nil, err
	}

	stanzas := Parse(input.Text)
	if err := validateTokens(stanzas); err != nil {
		return uuid.Nil, err
	}

	p := &domain.Poem{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(input.Title),
		AuthorID:  s.cfg.DefaultAuthorID,
		CreatedAt: time.Now().UTC(),
		Stanzas:   stanzas,
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ids, err := s.words.Upsert(txCtx, p.DistinctWords())
		if err != nil {
			return fmt.Errorf("upsert dictionary words: %w", err)
		}
		if err := s.poems.CreateWithTree(txCtx, p, ids); err != nil {
			return fmt.Errorf("insert poem tree: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.ErrorContext(ctx, "poem ingestion failed",
			slog.String("poem_id", p.ID.String()),
			slog.String("error", err.Error()),
		)
		return uuid.Nil, ErrIngestion
	}

	s.log.InfoContext(ctx, "poem created",
		slog.String("poem_id", p.ID.String()),
		slog.Int("stanzas", len(p.Stanzas)),
		slog.Int("words", p.WordCount()),
		slog.Int("distinct_words", len(p.DistinctWords())),
	)

	return p.ID, nil
}
