package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Poem is an ingested poem with its full stanza -> line -> word tree.
// Poems are immutable after ingestion.
type Poem struct {
	ID        uuid.UUID
	Title     string
	AuthorID  *uuid.UUID
	CreatedAt time.Time

	Stanzas []Stanza
}

// Stanza is a block of lines separated from its neighbours by a blank line.
// Position is 1-based within the poem.
type Stanza struct {
	Position int
	Lines    []Line
}

// Line is a single verse. Position is 1-based within its stanza.
type Line struct {
	Position int
	Words    []WordOccurrence
}

// WordOccurrence is one token of a line as it appeared in the source text.
// Normalized is the key of the dictionary entry it points to; Payload is that
// entry's cached lexical data and stays nil until the entry is enriched.
type WordOccurrence struct {
	Position   int
	Original   string
	Normalized string
	Payload    json.RawMessage
}

// PoemSummary is the list projection of a poem.
type PoemSummary struct {
	ID        uuid.UUID  `db:"id"`
	Title     string     `db:"title"`
	AuthorID  *uuid.UUID `db:"author_id"`
	CreatedAt time.Time  `db:"created_at"`
}

// DistinctWords returns the distinct normalized keys used by the poem,
// in first-seen order.
func (p *Poem) DistinctWords() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range p.Stanzas {
		for _, l := range s.Lines {
			for _, w := range l.Words {
				if _, ok := seen[w.Normalized]; ok {
					continue
				}
				seen[w.Normalized] = struct{}{}
				out = append(out, w.Normalized)
			}
		}
	}
	return out
}

// WordCount returns the total number of word occurrences.
func (p *Poem) WordCount() int {
	n := 0
	for _, s := range p.Stanzas {
		for _, l := range s.Lines {
			n += len(l.Words)
		}
	}
	return n
}

// PoemFilter narrows poem listings. Zero Limit means no limit.
type PoemFilter struct {
	AuthorID *uuid.UUID
	Limit    int
	Offset   int
}
