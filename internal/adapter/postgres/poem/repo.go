// Package poem implements the poem repository using PostgreSQL.
// A poem is stored as a 4-level aggregate (poems -> stanzas -> lines -> words)
// whose word rows point at dictionary_words. The aggregate is immutable.
package poem

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/poetry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/poetry-backend/internal/domain"
)

const entity = "poem"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides poem persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new poem repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write
// ---------------------------------------------------------------------------

const (
	insertPoemSQL = `
INSERT INTO poems (id, title, author_id, created_at)
VALUES ($1, $2, $3, $4)`

	insertStanzasSQL = `
INSERT INTO stanzas (id, poem_id, position)
SELECT s.id, $2, s.position
FROM unnest($1::uuid[], $3::int[]) AS s(id, position)`

	insertLinesSQL = `
INSERT INTO lines (id, stanza_id, position)
SELECT * FROM unnest($1::uuid[], $2::uuid[], $3::int[])`

	insertWordsSQL = `
INSERT INTO words (id, line_id, position, dictionary_word_id, original)
SELECT * FROM unnest($1::uuid[], $2::uuid[], $3::int[], $4::uuid[], $5::text[])`
)

// CreateWithTree inserts the poem, its stanzas, lines and word occurrences.
// dictIDs maps every normalized key used by the poem to its dictionary id.
// It must run inside a transaction (TxManager.RunInTx): the four statements
// only make sense together.
func (r *Repo) CreateWithTree(ctx context.Context, p *domain.Poem, dictIDs map[string]uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, insertPoemSQL, p.ID, p.Title, p.AuthorID, p.CreatedAt); err != nil {
		return postgres.MapError(err, entity, p.ID)
	}

	rows, err := flatten(p, dictIDs)
	if err != nil {
		return err
	}

	if len(rows.stanzaIDs) > 0 {
		if _, err := q.Exec(ctx, insertStanzasSQL, rows.stanzaIDs, p.ID, rows.stanzaPos); err != nil {
			return postgres.MapError(err, "stanza", p.ID)
		}
	}
	if len(rows.lineIDs) > 0 {
		if _, err := q.Exec(ctx, insertLinesSQL, rows.lineIDs, rows.lineStanzaIDs, rows.linePos); err != nil {
			return postgres.MapError(err, "line", p.ID)
		}
	}
	if len(rows.wordIDs) > 0 {
		if _, err := q.Exec(ctx, insertWordsSQL,
			rows.wordIDs, rows.wordLineIDs, rows.wordPos, rows.wordDictIDs, rows.wordOriginals,
		); err != nil {
			return postgres.MapError(err, "word", p.ID)
		}
	}

	return nil
}

// treeRows is the column-wise form of a poem tree, one slice per column.
type treeRows struct {
	stanzaIDs []uuid.UUID
	stanzaPos []int32

	lineIDs       []uuid.UUID
	lineStanzaIDs []uuid.UUID
	linePos       []int32

	wordIDs       []uuid.UUID
	wordLineIDs   []uuid.UUID
	wordPos       []int32
	wordDictIDs   []uuid.UUID
	wordOriginals []string
}

func flatten(p *domain.Poem, dictIDs map[string]uuid.UUID) (*treeRows, error) {
	var t treeRows
	for _, s := range p.Stanzas {
		stanzaID := uuid.New()
		t.stanzaIDs = append(t.stanzaIDs, stanzaID)
		t.stanzaPos = append(t.stanzaPos, int32(s.Position))

		for _, l := range s.Lines {
			lineID := uuid.New()
			t.lineIDs = append(t.lineIDs, lineID)
			t.lineStanzaIDs = append(t.lineStanzaIDs, stanzaID)
			t.linePos = append(t.linePos, int32(l.Position))

			for _, w := range l.Words {
				dictID, ok := dictIDs[w.Normalized]
				if !ok {
					return nil, fmt.Errorf("poem %s: no dictionary id for %q", p.ID, w.Normalized)
				}
				t.wordIDs = append(t.wordIDs, uuid.New())
				t.wordLineIDs = append(t.wordLineIDs, lineID)
				t.wordPos = append(t.wordPos, int32(w.Position))
				t.wordDictIDs = append(t.wordDictIDs, dictID)
				t.wordOriginals = append(t.wordOriginals, w.Original)
			}
		}
	}
	return &t, nil
}

// ---------------------------------------------------------------------------
// Read
// ---------------------------------------------------------------------------

// LEFT JOINs keep stanzas without lines. The ORDER BY is what guarantees
// the reconstructed order; folding relies on it.
const getTreeSQL = `
SELECT p.title, p.author_id, p.created_at,
       s.position, l.position, w.position,
       w.original, d.text, d.payload
FROM poems p
LEFT JOIN stanzas s          ON s.poem_id = p.id
LEFT JOIN lines l            ON l.stanza_id = s.id
LEFT JOIN words w            ON w.line_id = l.id
LEFT JOIN dictionary_words d ON d.id = w.dictionary_word_id
WHERE p.id = $1
ORDER BY s.position, l.position, w.position`

// GetTree returns the poem with its full tree ordered by position at every
// level. Returns domain.ErrNotFound if the poem does not exist.
func (r *Repo) GetTree(ctx context.Context, id uuid.UUID) (*domain.Poem, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, getTreeSQL, id)
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	defer rows.Close()

	var p *domain.Poem
	for rows.Next() {
		var (
			title      string
			authorID   *uuid.UUID
			createdAt  time.Time
			stanzaPos  *int32
			linePos    *int32
			wordPos    *int32
			original   *string
			normalized *string
			payload    json.RawMessage
		)
		if err := rows.Scan(&title, &authorID, &createdAt,
			&stanzaPos, &linePos, &wordPos,
			&original, &normalized, &payload,
		); err != nil {
			return nil, fmt.Errorf("scan poem tree row: %w", err)
		}

		if p == nil {
			p = &domain.Poem{ID: id, Title: title, AuthorID: authorID, CreatedAt: createdAt}
		}
		if stanzaPos == nil {
			continue
		}
		stanza := lastStanza(p, int(*stanzaPos))
		if linePos == nil {
			continue
		}
		line := lastLine(stanza, int(*linePos))
		if wordPos == nil {
			continue
		}
		line.Words = append(line.Words, domain.WordOccurrence{
			Position:   int(*wordPos),
			Original:   deref(original),
			Normalized: deref(normalized),
			Payload:    payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	if p == nil {
		return nil, fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return p, nil
}

// lastStanza returns the stanza at pos, appending it when the ordered scan
// reaches a new position.
func lastStanza(p *domain.Poem, pos int) *domain.Stanza {
	if n := len(p.Stanzas); n > 0 && p.Stanzas[n-1].Position == pos {
		return &p.Stanzas[n-1]
	}
	p.Stanzas = append(p.Stanzas, domain.Stanza{Position: pos})
	return &p.Stanzas[len(p.Stanzas)-1]
}

func lastLine(s *domain.Stanza, pos int) *domain.Line {
	if n := len(s.Lines); n > 0 && s.Lines[n-1].Position == pos {
		return &s.Lines[n-1]
	}
	s.Lines = append(s.Lines, domain.Line{Position: pos})
	return &s.Lines[len(s.Lines)-1]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

// List returns poem summaries, newest first.
func (r *Repo) List(ctx context.Context, f domain.PoemFilter) ([]domain.PoemSummary, error) {
	b := psql.Select("id", "title", "author_id", "created_at").
		From("poems").
		OrderBy("created_at DESC", "id")

	if f.AuthorID != nil {
		b = b.Where(sq.Eq{"author_id": *f.AuthorID})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list poems query: %w", err)
	}

	out := []domain.PoemSummary{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, fmt.Errorf("list poems: %w", err)
	}
	return out, nil
}
