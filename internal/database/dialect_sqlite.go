package database

// SQLiteDialect implements Dialect for SQLite databases.
type SQLiteDialect struct{}

// DriverName returns "sqlite" for the modernc.org/sqlite driver.
func (d *SQLiteDialect) DriverName() string {
	return "sqlite"
}

// Placeholder returns "?" for all positions
func (d *SQLiteDialect) Placeholder(position int) string {
	return "?"
}

// InitStatements returns SQLite PRAGMA statements.
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

// JSONType returns "TEXT"; SQLite has no dedicated JSON column type.
func (d *SQLiteDialect) JSONType() string {
	return "TEXT"
}

// TimestampType returns "TIMESTAMP" so the driver scans values into time.Time.
func (d *SQLiteDialect) TimestampType() string {
	return "TIMESTAMP"
}
