package core

import (
	"database/sql"
	"strings"
	"time"
)

// SQLClient is implemented by both *sql.DB and *sql.Tx.
type SQLClient interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Fixed-width layout so that string comparison in SQL matches chronological order.
const sqlTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// timeToSQL converts a time struct to a string representation compatible with SQLite.
func timeToSQL(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.UTC().Format(sqlTimeLayout)
}

// timeFromSQL parses a string representation of a time to a time struct.
func timeFromSQL(dateStr string) time.Time {
	date, err := time.Parse(sqlTimeLayout, dateStr)
	if err != nil {
		return time.Time{}
	}
	return date
}

// placeholders returns "?, ?, ?" for n parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
