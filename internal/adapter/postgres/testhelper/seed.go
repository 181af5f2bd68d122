package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

// UniqueWord returns a normalized dictionary key that no other test uses,
// so tests sharing the container do not collide on dictionary_words.text.
func UniqueWord(prefix string) string {
	return domain.NormalizeWord(prefix + uuid.New().String()[:8])
}

// SeedAuthor inserts an author with a unique name.
func SeedAuthor(t *testing.T, pool *pgxpool.Pool) domain.Author {
	t.Helper()

	author := domain.Author{
		ID:        uuid.New(),
		Name:      "Author " + uuid.New().String()[:8],
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO authors (id, name, created_at) VALUES ($1, $2, $3)`,
		author.ID, author.Name, author.CreatedAt,
	)
	if err != nil {
		t.Fatalf("SeedAuthor: %v", err)
	}
	return author
}

// SeedDictionaryWord inserts a dictionary entry. A nil payload leaves the
// entry unenriched.
func SeedDictionaryWord(t *testing.T, pool *pgxpool.Pool, text string, payload json.RawMessage) domain.DictionaryWord {
	t.Helper()

	w := domain.DictionaryWord{ID: uuid.New(), Text: text, Payload: payload}

	var arg any
	if payload != nil {
		arg = payload
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO dictionary_words (id, text, payload) VALUES ($1, $2, $3)`,
		w.ID, w.Text, arg,
	)
	if err != nil {
		t.Fatalf("SeedDictionaryWord: %v", err)
	}
	return w
}

// CountRows returns the number of rows in table matching where (may be empty).
func CountRows(t *testing.T, pool *pgxpool.Pool, table, where string, args ...any) int {
	t.Helper()

	q := "SELECT count(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}

	var n int
	if err := pool.QueryRow(context.Background(), q, args...).Scan(&n); err != nil {
		t.Fatalf("CountRows(%s): %v", table, err)
	}
	return n
}
