package lexicon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

// Enrich fetches the lexical payload of an existing, not yet enriched entry
// and caches it. The write only succeeds while the entry has no payload, so
// concurrent enrichments of the same word store exactly one payload.
func (s *Service) Enrich(ctx context.Context, word string) (*domain.DictionaryWord, error) {
	key, err := dictionaryKey(word)
	if err != nil {
		return nil, err
	}

	entry, err := s.words.GetByText(ctx, key)
	if err != nil {
		return nil, err
	}
	if entry.Enriched() {
		return nil, fmt.Errorf("word %s: payload already populated: %w", key, domain.ErrConflict)
	}

	payload, err := s.provider.FetchWord(ctx, providerWord(key))
	if err != nil {
		s.log.WarnContext(ctx, "lexical provider failed",
			slog.String("word", key),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	updated, err := s.words.SetPayloadIfEmpty(ctx, key, payload)
	if errors.Is(err, domain.ErrNotFound) {
		// No row matched: the entry vanished or another request cached a
		// payload after our read.
		if _, getErr := s.words.GetByText(ctx, key); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("word %s: payload already populated: %w", key, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("store payload: %w", err)
	}

	s.log.InfoContext(ctx, "word enriched", slog.String("word", key), slog.Int("payload_bytes", len(updated.Payload)))

	return updated, nil
}

// Clear drops the cached payload of an entry.
func (s *Service) Clear(ctx context.Context, word string) (*domain.DictionaryWord, error) {
	key, err := dictionaryKey(word)
	if err != nil {
		return nil, err
	}

	cleared, err := s.words.ClearPayload(ctx, key)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "word payload cleared", slog.String("word", key))

	return cleared, nil
}
