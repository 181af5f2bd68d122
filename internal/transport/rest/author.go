package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/poetry-backend/internal/domain"
	"github.com/heartmarshall/poetry-backend/internal/service/author"
)

type authorService interface {
	Create(ctx context.Context, input author.Input) (*domain.Author, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Author, error)
	List(ctx context.Context) ([]domain.Author, error)
	Update(ctx context.Context, id uuid.UUID, input author.Input) (*domain.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPoems(ctx context.Context, id uuid.UUID) ([]domain.PoemSummary, error)
}

// AuthorHandler serves author CRUD.
type AuthorHandler struct {
	svc authorService
	log *slog.Logger
}

// NewAuthorHandler creates an AuthorHandler.
func NewAuthorHandler(svc authorService, logger *slog.Logger) *AuthorHandler {
	return &AuthorHandler{svc: svc, log: logger.With("handler", "author")}
}

type authorRequest struct {
	Name        string  `json:"name"`
	Nationality *string `json:"nationality"`
	BirthDate   *string `json:"birthDate"`
	DeathDate   *string `json:"deathDate"`
	Biography   *string `json:"biography"`
}

func (req authorRequest) input() author.Input {
	return author.Input{
		Name:        req.Name,
		Nationality: req.Nationality,
		BirthDate:   req.BirthDate,
		DeathDate:   req.DeathDate,
		Biography:   req.Biography,
	}
}

type authorResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Nationality *string   `json:"nationality"`
	BirthDate   *string   `json:"birthDate"`
	DeathDate   *string   `json:"deathDate"`
	Biography   *string   `json:"biography"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toAuthorResponse(a *domain.Author) authorResponse {
	return authorResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Nationality: a.Nationality,
		BirthDate:   formatDate(a.BirthDate),
		DeathDate:   formatDate(a.DeathDate),
		Biography:   a.Biography,
		CreatedAt:   a.CreatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(author.DateLayout)
	return &s
}

// Create handles POST /authors.
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	a, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "author created", ID: a.ID.String()})
}

// List handles GET /authors.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]authorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, toAuthorResponse(&authors[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /authors/{id}.
func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthorResponse(a))
}

// Update handles PUT /authors/{id}.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req authorRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	a, err := h.svc.Update(r.Context(), id, req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthorResponse(a))
}

// Delete handles DELETE /authors/{id}.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "author deleted"})
}

// Poems handles GET /authors/{id}/poems.
func (h *AuthorHandler) Poems(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	poems, err := h.svc.ListPoems(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPoemSummaries(poems))
}
