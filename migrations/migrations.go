// Package migrations embeds the SurrealQL schema files applied at startup
// and by the test database harness.
package migrations

import "embed"

// FS holds every *.surql file in this directory
//
//go:embed *.surql
var FS embed.FS
