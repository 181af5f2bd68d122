// Package lexicon serves the dictionary side of the backend: enrichment of
// entries from the lexical provider, projections over the cached payload
// and the verbal-form lookup.
package lexicon

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

type dictionaryRepo interface {
	GetByText(ctx context.Context, text string) (*domain.DictionaryWord, error)
	SetPayloadIfEmpty(ctx context.Context, text string, payload json.RawMessage) (*domain.DictionaryWord, error)
	ClearPayload(ctx context.Context, text string) (*domain.DictionaryWord, error)
	Conjugations(ctx context.Context, text string) (json.RawMessage, error)

	Synonyms(ctx context.Context, text string) ([]string, error)
	Antonyms(ctx context.Context, text string) ([]string, error)
	Senses(ctx context.Context, text string) ([]domain.Sense, error)
	Origins(ctx context.Context, text string) ([]domain.Origin, error)
}

type lexicalProvider interface {
	FetchWord(ctx context.Context, word string) (json.RawMessage, error)
}

// Service implements dictionary enrichment and lexical queries.
type Service struct {
	log      *slog.Logger
	words    dictionaryRepo
	provider lexicalProvider
}

// NewService creates a new Lexicon service.
func NewService(log *slog.Logger, words dictionaryRepo, provider lexicalProvider) *Service {
	return &Service{
		log:      log.With("service", "lexicon"),
		words:    words,
		provider: provider,
	}
}

// dictionaryKey normalizes a caller-supplied word into a dictionary key.
// Normalization is idempotent, so keys pass through unchanged.
func dictionaryKey(word string) (string, error) {
	key := domain.NormalizeWord(strings.TrimSpace(word))
	if key == "" {
		return "", domain.NewValidationError("word", "required")
	}
	return key, nil
}

// providerWord is the form sent to the provider, which indexes lowercase
// headwords.
func providerWord(key string) string {
	return cases.Lower(language.Spanish).String(key)
}
