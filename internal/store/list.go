package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/docflow-io/docflow/internal/doctype"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListOptions carries the query surface of the generated list operation
type ListOptions struct {
	Page  int
	Limit int

	// Search matches as a substring against every search field, OR-combined
	Search string

	// Filters are exact-match conditions on declared or standard fields;
	// keys that match no field are ignored
	Filters map[string]string
}

// ListResult is the paginated list envelope
type ListResult struct {
	Data  []Record `json:"data"`
	Total int      `json:"total"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Pages int      `json:"pages"`
}

// List returns a page of documents. Total counts the full filtered set and
// pages is ceil(total/limit), so pagination arithmetic is exact whatever the
// page size.
func (o *Operations) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	b := o.b

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	where, args := b.buildWhere(opts)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(b.table))
	if where != "" {
		countQuery += " WHERE " + where
	}
	countQuery = b.store.dialect.Rebind(countQuery)

	var total int
	if err := b.store.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, convertDBError(err)
	}

	dataQuery := fmt.Sprintf("SELECT %s FROM %s", b.selectColumns(), quoteIdent(b.table))
	if where != "" {
		dataQuery += " WHERE " + where
	}
	dataQuery += " ORDER BY " + b.orderClause()
	dataQuery += " LIMIT ? OFFSET ?"
	dataQuery = b.store.dialect.Rebind(dataQuery)

	pageArgs := append(append([]interface{}{}, args...), limit, (page-1)*limit)
	rows, err := b.scanAll(ctx, b.store.db, dataQuery, pageArgs...)
	if err != nil {
		return nil, err
	}

	data := make([]Record, 0, len(rows))
	for _, row := range rows {
		data = append(data, b.ToRecord(row))
	}

	return &ListResult{
		Data:  data,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: (total + limit - 1) / limit,
	}, nil
}

// buildWhere renders exact-match filters and the OR-combined search clause
func (b *boundType) buildWhere(opts ListOptions) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	for _, f := range b.docType.Fields {
		raw, ok := opts.Filters[f.Fieldname]
		if !ok {
			continue
		}
		value, err := coerceValue(f, raw)
		if err != nil {
			// An uncoercible filter value can never match
			value = raw
		}
		clauses = append(clauses, fmt.Sprintf("%s = ?", quoteIdent(f.Fieldname)))
		args = append(args, value)
	}
	for _, std := range []string{doctype.FieldDocStatus, doctype.FieldOwner, doctype.FieldID} {
		raw, ok := opts.Filters[std]
		if !ok {
			continue
		}
		var value interface{} = raw
		if std == doctype.FieldDocStatus {
			// docstatus is an INTEGER column; postgres will not bind a
			// text parameter against it.
			n, err := strconv.Atoi(raw)
			if err != nil {
				n = -1
			}
			value = n
		}
		clauses = append(clauses, fmt.Sprintf("%s = ?", quoteIdent(std)))
		args = append(args, value)
	}

	if opts.Search != "" && len(b.docType.SearchFields) > 0 {
		var likes []string
		pattern := "%" + opts.Search + "%"
		for _, sf := range b.docType.SearchFields {
			likes = append(likes, fmt.Sprintf("%s LIKE ?", quoteIdent(sf)))
			args = append(args, pattern)
		}
		clauses = append(clauses, "("+strings.Join(likes, " OR ")+")")
	}

	return strings.Join(clauses, " AND "), args
}

// orderClause renders the type's default sort with a stable id tiebreaker
func (b *boundType) orderClause() string {
	field := b.docType.SortField
	if field == "" {
		field = doctype.FieldModified
	}
	dir := "DESC"
	if b.docType.SortOrder == doctype.SortAsc {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s, %s ASC", quoteIdent(field), dir, quoteIdent(doctype.FieldID))
}
