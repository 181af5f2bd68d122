package lexicon

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/poetry-backend/internal/domain"
	"github.com/heartmarshall/poetry-backend/internal/service/lexicon/conjugation"
)

// Synonyms returns the synonyms of every sense of the word.
func (s *Service) Synonyms(ctx context.Context, word string) ([]string, error) {
	key, err := dictionaryKey(word)
	if err != nil {
		return nil, err
	}
	return s.words.Synonyms(ctx, key)
}

// Antonyms returns the distinct antonyms of every sense of the word.
func (s *Service) Antonyms(ctx context.Context, word string) ([]string, error) {
	key, err := dictionaryKey(word)
	if err != nil {
		return nil, err
	}
	return s.words.Antonyms(ctx, key)
}

// Senses returns every sense of every meaning of the word.
func (s *Service) Senses(ctx context.Context, word string) ([]domain.Sense, error) {
	key, err := dictionaryKey(word)
	if err != nil {
		return nil, err
	}
	return s.words.Senses(ctx, key)
}

// Origin returns the etymology of every meaning of the word.
func (s *Service) Origin(ctx context.Context, word string) ([]domain.Origin, error) {
	key, err := dictionaryKey(word)
	if err != nil {
		return nil, err
	}
	return s.words.Origins(ctx, key)
}

// VerbalForm locates word in the conjugation table cached on its entry.
// The entry is looked up by its normalized key; the table is searched with
// the word as given.
func (s *Service) VerbalForm(ctx context.Context, word string) (domain.VerbalForm, error) {
	key, err := dictionaryKey(word)
	if err != nil {
		return domain.VerbalForm{}, err
	}

	raw, err := s.words.Conjugations(ctx, key)
	if err != nil {
		return domain.VerbalForm{}, err
	}
	if raw == nil {
		return domain.VerbalForm{}, fmt.Errorf("word %s has no conjugations: %w", key, domain.ErrNotFound)
	}

	table, err := conjugation.Parse(raw)
	if err != nil {
		return domain.VerbalForm{}, fmt.Errorf("word %s: %w: %w", key, err, domain.ErrNotFound)
	}

	return table.Locate(strings.TrimSpace(word))
}
