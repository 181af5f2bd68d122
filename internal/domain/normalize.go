package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// stripPunct removes the punctuation that never takes part in a dictionary key.
// Other marks (¿ ? ¡ ! ; : quotes) are kept as-is.
var stripPunct = strings.NewReplacer(".", "", ",", "")

// NormalizeWord maps a verbatim token to its dictionary key:
//   - uppercases it with Spanish casing rules
//   - removes every '.' and ','
//
// It is idempotent, so a key that is already normalized maps to itself.
// A token made only of periods and commas normalizes to "".
func NormalizeWord(token string) string {
	// cases.Caser keeps state and must not be shared between goroutines.
	upper := cases.Upper(language.Spanish).String(token)
	return stripPunct.Replace(upper)
}
