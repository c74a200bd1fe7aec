package database

import (
	"fmt"
	"strings"
)

// PostgresDialect implements Dialect for PostgreSQL through lib/pq.
type PostgresDialect struct{}

// DriverName returns "postgres".
func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// Placeholder returns "$N" for the given position.
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// SerialPrimaryKey returns a SERIAL key.
func (d *PostgresDialect) SerialPrimaryKey() string {
	return "SERIAL PRIMARY KEY"
}

// InitStatements returns nothing; foreign keys are always enforced.
func (d *PostgresDialect) InitStatements() []string {
	return nil
}

// IsDuplicateKeyError returns true if the error is a PostgreSQL unique violation.
func (d *PostgresDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// 23505 is unique_violation
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "unique constraint")
}

// EqualFold lowercases both sides.
func (d *PostgresDialect) EqualFold(column string) string {
	return "LOWER(" + column + ") = LOWER(?)"
}
