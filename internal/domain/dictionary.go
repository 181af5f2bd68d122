package domain

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// DictionaryWord is a canonical dictionary entry keyed by its normalized text.
// Payload holds the raw document returned by the lexical provider, or nil
// when the entry has not been enriched.
type DictionaryWord struct {
	ID      uuid.UUID
	Text    string
	Payload json.RawMessage
}

// Enriched reports whether the entry carries a lexical payload.
func (w *DictionaryWord) Enriched() bool {
	return len(w.Payload) > 0 && !bytes.Equal(w.Payload, []byte("null"))
}

// Sense is one sense of a meaning inside a lexical payload.
type Sense struct {
	MeaningNumber *string `db:"meaning_number" json:"meaningNumber"`
	Description   *string `db:"description"    json:"description"`
	Category      *string `db:"category"       json:"category"`
	Usage         *string `db:"usage"          json:"usage"`
	Raw           *string `db:"raw"            json:"raw"`
}

// Origin is the etymology block of a meaning inside a lexical payload.
type Origin struct {
	Raw   *string `db:"raw"   json:"raw"`
	Text  *string `db:"text"  json:"text"`
	Type  *string `db:"type"  json:"type"`
	Voice *string `db:"voice" json:"voice"`
}

// VerbalForm is the position of a conjugated form inside a conjugation table.
// Person is nil for non-personal forms (infinitive, gerund, participle).
type VerbalForm struct {
	Mood   string
	Tense  string
	Person *string
}
