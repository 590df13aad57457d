package shortener

import "embed"

// Migrations holds the goose SQL migrations of the links schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS
