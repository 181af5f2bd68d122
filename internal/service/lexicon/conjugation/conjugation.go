// Package conjugation models a verb conjugation table and reverse-maps a
// surface form to the (mood, tense, person) cell that holds it.
//
// A table is an ordered document: moods map tenses to persons to surface
// forms, except the non-personal mood which maps form names (infinitive,
// gerund, participle) directly to surface forms. Key order is significant
// because the first matching cell wins.
package conjugation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

// NonPersonalMood is the mood whose entries carry no person.
const NonPersonalMood = "non_personal"

var (
	// ErrNoMatch is returned by Locate when no cell contains the word.
	ErrNoMatch = fmt.Errorf("no conjugation cell matches: %w", domain.ErrNotFound)

	// ErrMalformed is returned by Parse when the document is not a JSON object.
	ErrMalformed = errors.New("conjugation table is not a JSON object")
)

// Form is a named surface form: a person inside a tense, or a form name
// inside the non-personal mood.
type Form struct {
	Name  string
	Value string
}

// Tense lists the persons of one tense in document order.
type Tense struct {
	Name    string
	Persons []Form
}

// Mood is either the non-personal mood (NonPersonal set) or an ordinary
// mood (Tenses set).
type Mood struct {
	Name        string
	NonPersonal []Form
	Tenses      []Tense
}

// IsNonPersonal reports whether the mood has no persons.
func (m Mood) IsNonPersonal() bool { return m.Name == NonPersonalMood }

// Table is a conjugation table in document order.
type Table []Mood

// Parse builds a Table from raw JSON, keeping the document's key order.
// Cells that are not strings and tenses that are not objects are skipped.
func Parse(raw []byte) (Table, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformed
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, ErrMalformed
	}

	var t Table
	doc.ForEach(func(moodKey, moodVal gjson.Result) bool {
		if !moodVal.IsObject() {
			return true
		}
		m := Mood{Name: moodKey.String()}
		if m.IsNonPersonal() {
			m.NonPersonal = forms(moodVal)
		} else {
			moodVal.ForEach(func(tenseKey, tenseVal gjson.Result) bool {
				if tenseVal.IsObject() {
					m.Tenses = append(m.Tenses, Tense{Name: tenseKey.String(), Persons: forms(tenseVal)})
				}
				return true
			})
		}
		t = append(t, m)
		return true
	})
	return t, nil
}

func forms(obj gjson.Result) []Form {
	var out []Form
	obj.ForEach(func(k, v gjson.Result) bool {
		if v.Type == gjson.String {
			out = append(out, Form{Name: k.String(), Value: v.Str})
		}
		return true
	})
	return out
}

// Locate returns the first cell, in table order, whose surface form contains
// word case-insensitively. Containment rather than equality lets forms with
// attached clitics match their base.
func (t Table) Locate(word string) (domain.VerbalForm, error) {
	needle := strings.ToLower(word)

	for _, m := range t {
		if m.IsNonPersonal() {
			for _, f := range m.NonPersonal {
				if contains(f.Value, needle) {
					return domain.VerbalForm{Mood: m.Name, Tense: f.Name}, nil
				}
			}
			continue
		}
		for _, tense := range m.Tenses {
			for _, p := range tense.Persons {
				if contains(p.Value, needle) {
					person := p.Name
					return domain.VerbalForm{Mood: m.Name, Tense: tense.Name, Person: &person}, nil
				}
			}
		}
	}
	return domain.VerbalForm{}, ErrNoMatch
}

func contains(form, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(form), lowerNeedle)
}
