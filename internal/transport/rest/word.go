package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

type lexiconService interface {
	Enrich(ctx context.Context, word string) (*domain.DictionaryWord, error)
	Clear(ctx context.Context, word string) (*domain.DictionaryWord, error)
	Synonyms(ctx context.Context, word string) ([]string, error)
	Antonyms(ctx context.Context, word string) ([]string, error)
	Senses(ctx context.Context, word string) ([]domain.Sense, error)
	Origin(ctx context.Context, word string) ([]domain.Origin, error)
	VerbalForm(ctx context.Context, word string) (domain.VerbalForm, error)
}

// WordHandler serves dictionary enrichment and lexical queries. The {word}
// path value is normalized by the service.
type WordHandler struct {
	svc lexiconService
	log *slog.Logger
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(svc lexiconService, logger *slog.Logger) *WordHandler {
	return &WordHandler{svc: svc, log: logger.With("handler", "word")}
}

type dictionaryWordResponse struct {
	Text    string          `json:"text"`
	Payload json.RawMessage `json:"payload"`
}

type wordEnvelope struct {
	Word dictionaryWordResponse `json:"word"`
}

type itemsResponse[T any] struct {
	Word  string `json:"word"`
	Items []T    `json:"items"`
}

type verbalFormResponse struct {
	Word   string  `json:"word"`
	Mood   string  `json:"mood"`
	Tense  string  `json:"tense"`
	Person *string `json:"person"`
}

// Enrich handles PATCH /words/{word}.
func (h *WordHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	h.writeEntry(w, r, h.svc.Enrich)
}

// Clear handles PATCH /words/{word}/clear.
func (h *WordHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.writeEntry(w, r, h.svc.Clear)
}

func (h *WordHandler) writeEntry(
	w http.ResponseWriter, r *http.Request,
	op func(context.Context, string) (*domain.DictionaryWord, error),
) {
	entry, err := op(r.Context(), r.PathValue("word"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wordEnvelope{Word: dictionaryWordResponse{Text: entry.Text, Payload: entry.Payload}})
}

// Synonyms handles GET /words/{word}/synonyms.
func (h *WordHandler) Synonyms(w http.ResponseWriter, r *http.Request) {
	writeItems(h, w, r, h.svc.Synonyms)
}

// Antonyms handles GET /words/{word}/antonyms.
func (h *WordHandler) Antonyms(w http.ResponseWriter, r *http.Request) {
	writeItems(h, w, r, h.svc.Antonyms)
}

// Senses handles GET /words/{word}/senses.
func (h *WordHandler) Senses(w http.ResponseWriter, r *http.Request) {
	writeItems(h, w, r, h.svc.Senses)
}

// Origin handles GET /words/{word}/origin.
func (h *WordHandler) Origin(w http.ResponseWriter, r *http.Request) {
	writeItems(h, w, r, h.svc.Origin)
}

func writeItems[T any](
	h *WordHandler, w http.ResponseWriter, r *http.Request,
	query func(context.Context, string) ([]T, error),
) {
	word := r.PathValue("word")
	items, err := query(r.Context(), word)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemsResponse[T]{Word: word, Items: items})
}

// VerbalForm handles GET /words/{word}/verbal-form.
func (h *WordHandler) VerbalForm(w http.ResponseWriter, r *http.Request) {
	word := r.PathValue("word")
	form, err := h.svc.VerbalForm(r.Context(), word)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, verbalFormResponse{
		Word:   word,
		Mood:   form.Mood,
		Tense:  form.Tense,
		Person: form.Person,
	})
}
