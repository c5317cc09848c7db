// Package syncdb holds all the migrations for the synchronization database
package syncdb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the synchronization database
var Migrations = migrate.NewMigrations()
