// Package migrations bundles the SQL schema files applied by the migration runner.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
