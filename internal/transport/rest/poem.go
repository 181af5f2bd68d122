package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/poetry-backend/internal/domain"
	"github.com/heartmarshall/poetry-backend/internal/service/poem"
)

type poemService interface {
	CreatePoem(ctx context.Context, input poem.CreatePoemInput) (uuid.UUID, error)
	GetPoem(ctx context.Context, id uuid.UUID) (*domain.Poem, error)
	ListPoems(ctx context.Context, input poem.ListPoemsInput) ([]domain.PoemSummary, error)
}

// PoemHandler serves poem ingestion and reconstruction.
type PoemHandler struct {
	svc poemService
	log *slog.Logger
}

// NewPoemHandler creates a PoemHandler.
func NewPoemHandler(svc poemService, logger *slog.Logger) *PoemHandler {
	return &PoemHandler{svc: svc, log: logger.With("handler", "poem")}
}

type createPoemRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type poemSummaryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	AuthorID  *string   `json:"authorId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type poemResponse struct {
	Title   string           `json:"title"`
	Stanzas []stanzaResponse `json:"stanzas"`
}

type stanzaResponse struct {
	Number int            `json:"number"`
	Lines  []lineResponse `json:"lines"`
}

type lineResponse struct {
	Number int            `json:"number"`
	Words  []wordResponse `json:"words"`
}

type wordResponse struct {
	Original   string          `json:"original"`
	Normalized string          `json:"normalized"`
	Payload    json.RawMessage `json:"payload"`
}

// Create handles POST /poems.
func (h *PoemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPoemRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	id, err := h.svc.CreatePoem(r.Context(), poem.CreatePoemInput{Title: req.Title, Text: req.Text})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "poem created", ID: id.String()})
}

// List handles GET /poems?limit=&offset=.
func (h *PoemHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parsePaging(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	poems, err := h.svc.ListPoems(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPoemSummaries(poems))
}

// Get handles GET /poems/{id}.
func (h *PoemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.svc.GetPoem(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPoemResponse(p))
}

func parsePaging(r *http.Request) (poem.ListPoemsInput, error) {
	var (
		input poem.ListPoemsInput
		errs  []domain.FieldError
	)
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &input.Limit}, {"offset", &input.Offset}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: p.name, Message: "must be an integer"})
			continue
		}
		*p.dst = n
	}
	if len(errs) > 0 {
		return input, domain.NewValidationErrors(errs)
	}
	return input, nil
}

func toPoemSummaries(poems []domain.PoemSummary) []poemSummaryResponse {
	out := make([]poemSummaryResponse, 0, len(poems))
	for _, p := range poems {
		s := poemSummaryResponse{ID: p.ID.String(), Title: p.Title, CreatedAt: p.CreatedAt}
		if p.AuthorID != nil {
			id := p.AuthorID.String()
			s.AuthorID = &id
		}
		out = append(out, s)
	}
	return out
}

func toPoemResponse(p *domain.Poem) poemResponse {
	resp := poemResponse{Title: p.Title, Stanzas: make([]stanzaResponse, 0, len(p.Stanzas))}
	for _, s := range p.Stanzas {
		sr := stanzaResponse{Number: s.Position, Lines: make([]lineResponse, 0, len(s.Lines))}
		for _, l := range s.Lines {
			lr := lineResponse{Number: l.Position, Words: make([]wordResponse, 0, len(l.Words))}
			for _, word := range l.Words {
				lr.Words = append(lr.Words, wordResponse{
					Original:   word.Original,
					Normalized: word.Normalized,
					Payload:    word.Payload,
				})
			}
			sr.Lines = append(sr.Lines, lr)
		}
		resp.Stanzas = append(resp.Stanzas, sr)
	}
	return resp
}
