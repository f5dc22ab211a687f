package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/docflow-io/docflow/internal/doctype"
)

// Validate checks a full set of field values against the definition and
// collects every violation instead of stopping at the first, so a create or
// update response can name all the problems at once.
//
// Checks performed: required fields present and non-empty, select values
// inside the option list, text within its length bound, values coercible to
// their declared type, and required links resolving to an existing target
// document. Optional links stay soft: a dangling id is not an error.
func (b *boundType) Validate(ctx context.Context, q queryer, values Record) error {
	errs := NewValidationErrors()

	for _, f := range b.docType.Fields {
		value := values[f.Fieldname]

		if isEmpty(value) {
			if f.Required {
				errs.Add(f.Fieldname, "is required")
			}
			continue
		}

		coerced, err := coerceValue(f, value)
		if err != nil {
			errs.Add(f.Fieldname, err.Error())
			continue
		}
		values[f.Fieldname] = coerced

		switch f.Type {
		case doctype.TypeText:
			limit := f.MaxLength
			if limit <= 0 {
				limit = defaultTextLength
			}
			if s, ok := coerced.(string); ok && len(s) > limit {
				errs.Add(f.Fieldname, fmt.Sprintf("exceeds maximum length %d", limit))
			}

		case doctype.TypeSelect:
			s, _ := coerced.(string)
			if !contains(f.Options, s) {
				errs.Add(f.Fieldname, fmt.Sprintf("%q is not a valid option", s))
			}

		case doctype.TypeLink:
			if f.Required {
				ok, err := b.store.linkExists(ctx, q, f.Target, coerced.(string))
				if err != nil {
					return err
				}
				if !ok {
					errs.Add(f.Fieldname, fmt.Sprintf("%s %q does not exist", f.Target, coerced))
				}
			}
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// linkExists resolves a soft link against the target type's table. Targets
// that are not registered cannot be checked and pass; that mirrors the
// source system, where Link options are free-form.
func (s *Store) linkExists(ctx context.Context, q queryer, target, id string) (bool, error) {
	bound, ok := s.bound[target]
	if !ok {
		return true, nil
	}

	query := s.dialect.Rebind(fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = ?)",
		quoteIdent(bound.table), quoteIdent(doctype.FieldID),
	))

	var exists bool
	if err := q.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, convertDBError(err)
	}
	return exists, nil
}

// queryer is the subset of *sql.DB and *sql.Tx the validator needs
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
