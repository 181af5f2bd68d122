package domain

import (
	"time"

	"github.com/google/uuid"
)

// Author is a poet. Poems reference authors by ID; deleting an author
// leaves its poems unauthored.
type Author struct {
	ID          uuid.UUID  `db:"id"`
	Name        string     `db:"name"`
	Nationality *string    `db:"nationality"`
	BirthDate   *time.Time `db:"birth_date"`
	DeathDate   *time.Time `db:"death_date"`
	Biography   *string    `db:"biography"`
	CreatedAt   time.Time  `db:"created_at"`
}
