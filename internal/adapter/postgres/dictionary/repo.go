// Package dictionary implements the dictionary store using PostgreSQL.
// Entries are keyed by their normalized text; the lexical payload is an
// opaque JSONB document projected in SQL by the derived queries.
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/poetry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/poetry-backend/internal/domain"
)

const entity = "dictionary_word"

// Repo provides dictionary persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new dictionary repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Upsert
// ---------------------------------------------------------------------------

// One statement for the whole batch. The no-op DO UPDATE makes RETURNING
// yield the existing row on conflict, so every key gets an id back.
const upsertSQL = `
INSERT INTO dictionary_words (text)
SELECT unnest($1::text[])
ON CONFLICT (text) DO UPDATE SET text = EXCLUDED.text
RETURNING id, text`

// Upsert inserts the given normalized keys that are not in the dictionary yet
// and returns the id of every key. Keys are deduplicated and sorted first so
// concurrent ingestions lock rows in the same order.
func (r *Repo) Upsert(ctx context.Context, texts []string) (map[string]uuid.UUID, error) {
	keys := slices.Clone(texts)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	ids := make(map[string]uuid.UUID, len(keys))
	if len(keys) == 0 {
		return ids, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rows, err := q.Query(ctx, upsertSQL, keys)
	if err != nil {
		return nil, postgres.MapError(err, entity, "upsert")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   uuid.UUID
			text string
		)
		if err := rows.Scan(&id, &text); err != nil {
			return nil, fmt.Errorf("scan dictionary_word: %w", err)
		}
		ids[text] = id
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, "upsert")
	}

	if len(ids) != len(keys) {
		return nil, fmt.Errorf("upsert dictionary_words: got %d ids for %d keys", len(ids), len(keys))
	}

	return ids, nil
}

// ---------------------------------------------------------------------------
// Entry reads and payload writes
// ---------------------------------------------------------------------------

// GetByText returns the entry with the given normalized text.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByText(ctx context.Context, text string) (*domain.DictionaryWord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var w domain.DictionaryWord
	err := q.QueryRow(ctx,
		`SELECT id, text, payload FROM dictionary_words WHERE text = $1`, text,
	).Scan(&w.ID, &w.Text, &w.Payload)
	if err != nil {
		return nil, postgres.MapError(err, entity, text)
	}
	return &w, nil
}

// SetPayloadIfEmpty stores payload on the entry only while the entry has none.
// Returns domain.ErrNotFound when no row matched: the entry is either missing
// or was populated in the meantime, and the caller tells the two apart.
func (r *Repo) SetPayloadIfEmpty(ctx context.Context, text string, payload json.RawMessage) (*domain.DictionaryWord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var w domain.DictionaryWord
	err := q.QueryRow(ctx,
		`UPDATE dictionary_words
		 SET payload = $1
		 WHERE text = $2 AND payload IS NULL
		 RETURNING id, text, payload`,
		payload, text,
	).Scan(&w.ID, &w.Text, &w.Payload)
	if err != nil {
		return nil, postgres.MapError(err, entity, text)
	}
	return &w, nil
}

// ClearPayload removes the cached payload. Returns domain.ErrNotFound if the
// entry does not exist.
func (r *Repo) ClearPayload(ctx context.Context, text string) (*domain.DictionaryWord, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var w domain.DictionaryWord
	err := q.QueryRow(ctx,
		`UPDATE dictionary_words SET payload = NULL WHERE text = $1 RETURNING id, text, payload`,
		text,
	).Scan(&w.ID, &w.Text, &w.Payload)
	if err != nil {
		return nil, postgres.MapError(err, entity, text)
	}
	return &w, nil
}

// Conjugations returns the conjugation table of the entry's first meaning,
// or nil when the payload has none. Returns domain.ErrNotFound if the entry
// does not exist.
func (r *Repo) Conjugations(ctx context.Context, text string) (json.RawMessage, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var raw json.RawMessage
	err := q.QueryRow(ctx,
		`SELECT payload->'data'->'meanings'->0->'conjugations' FROM dictionary_words WHERE text = $1`,
		text,
	).Scan(&raw)
	if err != nil {
		return nil, postgres.MapError(err, entity, text)
	}
	if string(raw) == "null" {
		return nil, nil
	}
	return raw, nil
}
