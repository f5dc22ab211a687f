package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/docflow-io/docflow/internal/doctype"
)

// assignID computes a new document id per the type's naming rule, inside the
// create transaction so series counters and id uniqueness commit atomically
// with the document itself.
func (b *boundType) assignID(ctx context.Context, q queryer, values Record) (string, error) {
	strategy, arg, _ := doctype.ParseNamingRule(b.docType.NamingRule)

	switch strategy {
	case doctype.NamingByField:
		v, _ := values[arg].(string)
		id := strings.TrimSpace(v)
		if id == "" {
			ve := NewValidationErrors()
			ve.Add(arg, "is required to name the document")
			return "", ve
		}
		return id, nil

	case doctype.NamingBySeries:
		n, err := b.store.nextInSeries(ctx, q, arg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s-%05d", arg, n), nil

	default:
		return fmt.Sprintf("%s-%s", b.docType.Name, uuid.NewString()[:8]), nil
	}
}

// nextInSeries bumps and returns the counter for a series prefix. The
// upsert-then-update runs on the caller's transaction, so two concurrent
// creates under the same prefix serialize on the counter row.
func (s *Store) nextInSeries(ctx context.Context, q queryer, prefix string) (int64, error) {
	insert := s.dialect.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES (?, 0) ON CONFLICT (%s) DO NOTHING",
		quoteIdent(seriesTable), quoteIdent("prefix"), quoteIdent("current"), quoteIdent("prefix")))
	if _, err := q.ExecContext(ctx, insert, prefix); err != nil {
		return 0, convertDBError(err)
	}

	update := s.dialect.Rebind(fmt.Sprintf(
		"UPDATE %s SET %s = %s + 1 WHERE %s = ?",
		quoteIdent(seriesTable), quoteIdent("current"), quoteIdent("current"), quoteIdent("prefix")))
	if _, err := q.ExecContext(ctx, update, prefix); err != nil {
		return 0, convertDBError(err)
	}

	query := s.dialect.Rebind(fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ?",
		quoteIdent("current"), quoteIdent(seriesTable), quoteIdent("prefix")))

	var n int64
	if err := q.QueryRowContext(ctx, query, prefix).Scan(&n); err != nil {
		return 0, convertDBError(err)
	}
	return n, nil
}

// amendedID finds a free id for an amendment of the given document:
// ORIG-1, then ORIG-2, and so on. Runs inside the amend transaction.
func (b *boundType) amendedID(ctx context.Context, q queryer, originalID string) (string, error) {
	exists := b.store.dialect.Rebind(fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = ?)",
		quoteIdent(b.table), quoteIdent(doctype.FieldID)))

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", originalID, n)
		var taken bool
		if err := q.QueryRowContext(ctx, exists, candidate).Scan(&taken); err != nil {
			return "", convertDBError(err)
		}
		if !taken {
			return candidate, nil
		}
	}
}
