package migrations

import "embed"

// FS SQL migrations in golang-migrate naming (NNNNNN_name.up.sql / .down.sql)
//
//go:embed *.sql
var FS embed.FS
