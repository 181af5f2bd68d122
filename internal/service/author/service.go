// Package author manages poets and the poems attributed to them.
package author

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

type authorRepo interface {
	Create(ctx context.Context, a *domain.Author) (*domain.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error)
	List(ctx context.Context) ([]domain.Author, error)
	Update(ctx context.Context, a *domain.Author) (*domain.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type poemRepo interface {
	List(ctx context.Context, f domain.PoemFilter) ([]domain.PoemSummary, error)
}

// Service implements author CRUD.
type Service struct {
	log     *slog.Logger
	authors authorRepo
	poems   poemRepo
}

// NewService creates a new Author service.
func NewService(log *slog.Logger, authors authorRepo, poems poemRepo) *Service {
	return &Service{
		log:     log.With("service", "author"),
		authors: authors,
		poems:   poems,
	}
}

// Create stores a new author.
func (s *Service) Create(ctx context.Context, input Input) (*domain.Author, error) {
	fields, err := input.parse()
	if err != nil {
		return nil, err
	}

	a := &domain.Author{ID: uuid.New(), CreatedAt: time.Now().UTC()}
	fields.apply(a)

	created, err := s.authors.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}

	s.log.InfoContext(ctx, "author created", slog.String("author_id", created.ID.String()))
	return created, nil
}

// Get returns one author.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	a, err := s.authors.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	return a, nil
}

// List returns every author ordered by name.
func (s *Service) List(ctx context.Context) ([]domain.Author, error) {
	authors, err := s.authors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

// Update replaces the mutable fields of an author.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input Input) (*domain.Author, error) {
	fields, err := input.parse()
	if err != nil {
		return nil, err
	}

	a := &domain.Author{ID: id}
	fields.apply(a)

	updated, err := s.authors.Update(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}

	s.log.InfoContext(ctx, "author updated", slog.String("author_id", id.String()))
	return updated, nil
}

// Delete removes an author. Their poems stay, unattributed.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.authors.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete author: %w", err)
	}

	s.log.InfoContext(ctx, "author deleted", slog.String("author_id", id.String()))
	return nil
}

// ListPoems returns the poems attributed to an author, newest first.
func (s *Service) ListPoems(ctx context.Context, id uuid.UUID) ([]domain.PoemSummary, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	poems, err := s.poems.List(ctx, domain.PoemFilter{AuthorID: &id})
	if err != nil {
		return nil, fmt.Errorf("list author poems: %w", err)
	}
	return poems, nil
}
