package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the schema for the db's dialect. Statements are idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	stmts := schemaPostgres
	if db.DriverName() == DriverSQLite {
		stmts = schemaSQLite
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
