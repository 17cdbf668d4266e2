// Package migrations embute os scripts goose no binário de migração.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
