// Package governordb holds all the migrations for the workflow journal database
package governordb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the journal database
var Migrations = migrate.NewMigrations()
