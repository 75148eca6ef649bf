// Package migrations contiene el esquema versionado de la base de datos.
package migrations

import "embed"

// FS migraciones SQL embebidas en el binario (formato golang-migrate).
//
//go:embed *.sql
var FS embed.FS
