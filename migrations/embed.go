// Package migrations embeds the SQL migration files so the goose programmatic
// API can apply them at server bootstrap and in tests.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Hand it to a goose provider instead of relying on a filesystem path
// at runtime.
//
//go:embed *.sql
var FS embed.FS
