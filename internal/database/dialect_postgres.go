package database

import (
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL databases.
type PostgresDialect struct{}

// DriverName returns "postgres" for the lib/pq driver.
func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// Placeholder returns "$N" for the given position.
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// InitStatements returns nothing; PostgreSQL needs no per-database setup.
func (d *PostgresDialect) InitStatements() []string {
	return nil
}

// JSONType returns "JSONB".
func (d *PostgresDialect) JSONType() string {
	return "JSONB"
}

// TimestampType returns "TIMESTAMPTZ".
func (d *PostgresDialect) TimestampType() string {
	return "TIMESTAMPTZ"
}
