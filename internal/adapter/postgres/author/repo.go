// Package author implements the author repository using PostgreSQL.
package author

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/poetry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/poetry-backend/internal/domain"
)

const entity = "author"

var (
	psql    = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	columns = []string{"id", "name", "nationality", "birth_date", "death_date", "biography", "created_at"}
)

// Repo provides author persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new author repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts an author and returns the stored row.
func (r *Repo) Create(ctx context.Context, a *domain.Author) (*domain.Author, error) {
	query, args, err := psql.Insert("authors").
		Columns(columns...).
		Values(a.ID, a.Name, a.Nationality, a.BirthDate, a.DeathDate, a.Biography, a.CreatedAt).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert author query: %w", err)
	}

	var out domain.Author
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, a.ID)
	}
	return &out, nil
}

// GetByID returns the author. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	query, args, err := psql.Select(columns...).From("authors").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get author query: %w", err)
	}

	var out domain.Author
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return &out, nil
}

// List returns all authors ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Author, error) {
	query, args, err := psql.Select(columns...).From("authors").OrderBy("name", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list authors query: %w", err)
	}

	out := []domain.Author{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return out, nil
}

// Update replaces every mutable field. Returns domain.ErrNotFound if the
// author does not exist.
func (r *Repo) Update(ctx context.Context, a *domain.Author) (*domain.Author, error) {
	query, args, err := psql.Update("authors").
		Set("name", a.Name).
		Set("nationality", a.Nationality).
		Set("birth_date", a.BirthDate).
		Set("death_date", a.DeathDate).
		Set("biography", a.Biography).
		Where(sq.Eq{"id": a.ID}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update author query: %w", err)
	}

	var out domain.Author
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, a.ID)
	}
	return &out, nil
}

// Delete removes the author. Poems keep existing with a NULL author.
// Returns domain.ErrNotFound if the author does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := psql.Delete("authors").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete author query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}
