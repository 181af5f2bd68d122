package poem

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

// CreatePoemInput holds the parameters for ingesting a poem.
type CreatePoemInput struct {
	Title string
	Text  string
}

// Validate checks all fields and collects all errors.
func (i CreatePoemInput) Validate(maxTitleLength int) error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: fmt.Sprintf("max %d characters", maxTitleLength)})
	}

	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// validateTokens rejects words the store cannot hold.
func validateTokens(stanzas []domain.Stanza) error {
	for _, s := range stanzas {
		for _, l := range s.Lines {
			for _, w := range l.Words {
				if utf8.RuneCountInString(w.Original) > MaxWordLength {
					return domain.NewValidationError("text",
						fmt.Sprintf("stanza %d line %d word %d exceeds %d characters", s.Position, l.Position, w.Position, MaxWordLength))
				}
			}
		}
	}
	return nil
}

// ListPoemsInput holds the parameters for listing poems.
type ListPoemsInput struct {
	AuthorID *uuid.UUID
	Limit    int
	Offset   int
}

// Validate checks all fields and collects all errors.
func (i ListPoemsInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
