package store

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Dialect captures the small set of SQL differences the engine cares about
type Dialect int

const (
	// DialectSQLite targets mattn/go-sqlite3
	DialectSQLite Dialect = iota
	// DialectPostgres targets pgx via database/sql
	DialectPostgres
)

// DialectForDriver maps a database/sql driver name to a dialect
func DialectForDriver(driver string) Dialect {
	switch driver {
	case "pgx", "postgres":
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

// Rebind rewrites ? placeholders into the dialect's native form. Queries in
// this package are written with ? throughout; sqlite takes them as-is and
// postgres gets $1..$n.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// quoteIdent quotes an identifier for interpolation into SQL. Double-quoted
// identifiers are valid in both sqlite and postgres.
func quoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}
