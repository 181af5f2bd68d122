package author

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

const (
	// DateLayout is the wire format of birth and death dates.
	DateLayout = "2006-01-02"

	maxNameLength = 200
)

// Input holds the writable fields of an author. Dates use DateLayout.
type Input struct {
	Name        string
	Nationality *string
	BirthDate   *string
	DeathDate   *string
	Biography   *string
}

type authorFields struct {
	name        string
	nationality *string
	birthDate   *time.Time
	deathDate   *time.Time
	biography   *string
}

func (f authorFields) apply(a *domain.Author) {
	a.Name = f.name
	a.Nationality = f.nationality
	a.BirthDate = f.birthDate
	a.DeathDate = f.deathDate
	a.Biography = f.biography
}

// parse validates every field and collects all errors.
func (i Input) parse() (authorFields, error) {
	var errs []domain.FieldError

	f := authorFields{
		name:        strings.TrimSpace(i.Name),
		nationality: trimmed(i.Nationality),
		biography:   trimmed(i.Biography),
	}

	if f.name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(f.name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}

	var err error
	if f.birthDate, err = parseDate(i.BirthDate); err != nil {
		errs = append(errs, domain.FieldError{Field: "birthDate", Message: "must be YYYY-MM-DD"})
	}
	if f.deathDate, err = parseDate(i.DeathDate); err != nil {
		errs = append(errs, domain.FieldError{Field: "deathDate", Message: "must be YYYY-MM-DD"})
	}
	if f.birthDate != nil && f.deathDate != nil && f.deathDate.Before(*f.birthDate) {
		errs = append(errs, domain.FieldError{Field: "deathDate", Message: "before birthDate"})
	}

	if len(errs) > 0 {
		return authorFields{}, &domain.ValidationError{Errors: errs}
	}
	return f, nil
}

// trimmed returns nil for absent or blank values.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func parseDate(s *string) (*time.Time, error) {
	v := trimmed(s)
	if v == nil {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
