package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/docflow-io/docflow/internal/doctype"
)

// selectColumns renders the explicit column list for the bound type, in
// storage order. SELECT * is never used; column order stays deterministic.
func (b *boundType) selectColumns() string {
	names := b.columnNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// fetch reads one document row by id on the given queryer (db or tx)
func (b *boundType) fetch(ctx context.Context, q queryer, id string) (Record, error) {
	query := b.store.dialect.Rebind(fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ?",
		b.selectColumns(), quoteIdent(b.table), quoteIdent(doctype.FieldID)))

	row := q.QueryRowContext(ctx, query, id)

	columns := b.columnNames()
	values := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	if err := row.Scan(ptrs...); err != nil {
		return nil, convertDBError(err)
	}

	record := make(Record, len(columns))
	for i, col := range columns {
		record[col] = values[i]
	}
	return record, nil
}

// scanAll reads every row of a query result into records
func (b *boundType) scanAll(ctx context.Context, q queryer, query string, args ...interface{}) ([]Record, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, convertDBError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []Record
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		record := make(Record, len(columns))
		for i, col := range columns {
			record[col] = values[i]
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// docStatus extracts the lifecycle state from a stored row
func docStatus(row Record) int {
	return asInt(row[doctype.FieldDocStatus])
}

// fieldValues extracts the declared (non-standard) field values from a
// stored row, normalized to canonical types
func (b *boundType) fieldValues(row Record) Record {
	out := make(Record, len(b.docType.Fields))
	for _, f := range b.docType.Fields {
		out[f.Fieldname] = normalizeStored(f, row[f.Fieldname])
	}
	return out
}
