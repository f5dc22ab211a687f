package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/docflow-io/docflow/internal/doctype"
	"github.com/docflow-io/docflow/internal/events"
	"github.com/docflow-io/docflow/internal/workflow"
)

// Create validates and persists a new draft document. The id is computed
// from the type's naming rule, defaults are applied, and the full violation
// list is returned on any validation failure. Nothing is written unless
// everything passes.
func (o *Operations) Create(ctx context.Context, userID string, input map[string]interface{}) (Record, error) {
	b := o.b
	values := sanitizeInput(b.docType, input, false)
	applyDefaults(b.docType, values)

	var created Record
	err := b.withTx(ctx, func(tx *sql.Tx) error {
		if err := b.Validate(ctx, tx, values); err != nil {
			return err
		}

		id, err := b.assignID(ctx, tx, values)
		if err != nil {
			return err
		}

		if err := b.insert(ctx, tx, id, userID, values, ""); err != nil {
			return err
		}

		row, err := b.fetch(ctx, tx, id)
		if err != nil {
			return err
		}
		created = b.ToRecord(row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.store.publish(events.Event{
		Type:    events.DocumentCreated,
		DocType: b.docType.Name,
		ID:      asString(created[doctype.FieldID]),
		User:    userID,
	})
	return created, nil
}

// insert writes a new row with the standard columns stamped. amendedFrom is
// empty for ordinary creates.
func (b *boundType) insert(ctx context.Context, tx *sql.Tx, id, userID string, values Record, amendedFrom string) error {
	now := time.Now().UTC()

	cols := []string{
		doctype.FieldID, doctype.FieldCreation, doctype.FieldModified,
		doctype.FieldModifiedBy, doctype.FieldOwner, doctype.FieldDocStatus, doctype.FieldIdx,
	}
	args := []interface{}{id, now, now, userID, userID, int(workflow.Draft), 0}

	if b.docType.Submittable {
		cols = append(cols, doctype.FieldAmendedFrom)
		if amendedFrom == "" {
			args = append(args, nil)
		} else {
			args = append(args, amendedFrom)
		}
	}

	for _, f := range b.docType.Fields {
		cols = append(cols, f.Fieldname)
		args = append(args, values[f.Fieldname])
	}

	quoted := make([]string, len(cols))
	holes := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
		holes[i] = "?"
	}

	query := b.store.dialect.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(b.table), strings.Join(quoted, ", "), strings.Join(holes, ", ")))

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return convertDBError(err)
	}
	return nil
}
