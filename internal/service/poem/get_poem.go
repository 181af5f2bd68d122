package poem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

// GetPoem reconstructs a poem with stanzas, lines and words in stored order.
// Each word carries its dictionary key and cached payload.
func (s *Service) GetPoem(ctx context.Context, id uuid.UUID) (*domain.Poem, error) {
	p, err := s.poems.GetTree(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get poem: %w", err)
	}
	return p, nil
}

// ListPoems returns poem summaries, newest first.
func (s *Service) ListPoems(ctx context.Context, input ListPoemsInput) ([]domain.PoemSummary, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	poems, err := s.poems.List(ctx, domain.PoemFilter{
		AuthorID: input.AuthorID,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list poems: %w", err)
	}
	return poems, nil
}
