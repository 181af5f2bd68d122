// Package migrations holds the goose SQL migrations of the poem store.
package migrations

import "embed"

// FS contains every *.sql migration, ordered by its numeric prefix.
//
//go:embed *.sql
var FS embed.FS
