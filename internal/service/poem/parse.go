package poem

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/poetry-backend/internal/domain"
)

// A stanza break is a newline, any whitespace (more newlines included), and
// another newline: the lines in between hold nothing but whitespace.
// The class is the unicode.IsSpace set used by strings.Fields, so a line
// holding only NBSP or U+3000 breaks stanzas as well.
var stanzaBreak = regexp.MustCompile(`\n[\s\v\x{85}\p{Z}]*\n`)

// Parse splits raw poem text into stanzas, lines and word tokens.
// Positions are 1-based and contiguous at every level. Lines that are empty
// after trimming are dropped before positions are assigned, so a stanza made
// only of whitespace comes back with zero lines. Every token keeps its
// verbatim form next to its normalized dictionary key.
func Parse(text string) []domain.Stanza {
	chunks := stanzaBreak.Split(text, -1)
	stanzas := make([]domain.Stanza, 0, len(chunks))

	for i, chunk := range chunks {
		stanza := domain.Stanza{Position: i + 1}

		for _, raw := range strings.Split(strings.TrimSpace(chunk), "\n") {
			tokens := strings.Fields(raw)
			if len(tokens) == 0 {
				continue
			}

			line := domain.Line{
				Position: len(stanza.Lines) + 1,
				Words:    make([]domain.WordOccurrence, len(tokens)),
			}
			for j, tok := range tokens {
				line.Words[j] = domain.WordOccurrence{
					Position:   j + 1,
					Original:   tok,
					Normalized: domain.NormalizeWord(tok),
				}
			}
			stanza.Lines = append(stanza.Lines, line)
		}

		stanzas = append(stanzas, stanza)
	}

	return stanzas
}
