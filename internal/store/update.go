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

// Update merges a partial payload into a draft document, re-validates the
// merged result, and persists it. Read-only fields in the payload are
// dropped silently; any document no longer in Draft rejects the edit. The
// write carries a docstatus guard so a concurrent submit makes this update
// fail instead of clobbering a submitted document.
func (o *Operations) Update(ctx context.Context, userID, id string, input map[string]interface{}) (Record, error) {
	b := o.b
	partial := sanitizeInput(b.docType, input, true)

	var updated Record
	err := b.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := b.fetch(ctx, tx, id)
		if err != nil {
			return err
		}

		status := workflow.DocStatus(docStatus(existing))
		if !workflow.CanEdit(status) {
			return fmt.Errorf("%w: cannot update a %s document", workflow.ErrInvalidTransition, status)
		}

		merged := b.fieldValues(existing)
		for k, v := range partial {
			merged[k] = v
		}

		if err := b.Validate(ctx, tx, merged); err != nil {
			return err
		}

		if err := b.writeFields(ctx, tx, id, userID, merged); err != nil {
			return err
		}

		row, err := b.fetch(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = b.ToRecord(row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.store.publish(events.Event{
		Type:    events.DocumentUpdated,
		DocType: b.docType.Name,
		ID:      id,
		User:    userID,
	})
	return updated, nil
}

// writeFields persists the merged field values with the modified stamp and
// sequence bump. The docstatus=Draft guard is the compare-and-swap: zero
// rows affected means another transaction moved the document first.
func (b *boundType) writeFields(ctx context.Context, tx *sql.Tx, id, userID string, values Record) error {
	var sets []string
	var args []interface{}

	for _, f := range b.docType.Fields {
		sets = append(sets, fmt.Sprintf("%s = ?", quoteIdent(f.Fieldname)))
		args = append(args, values[f.Fieldname])
	}

	sets = append(sets,
		fmt.Sprintf("%s = ?", quoteIdent(doctype.FieldModified)),
		fmt.Sprintf("%s = ?", quoteIdent(doctype.FieldModifiedBy)),
		fmt.Sprintf("%s = %s + 1", quoteIdent(doctype.FieldIdx), quoteIdent(doctype.FieldIdx)))
	args = append(args, time.Now().UTC(), userID)

	query := b.store.dialect.Rebind(fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = ? AND %s = ?",
		quoteIdent(b.table), strings.Join(sets, ", "),
		quoteIdent(doctype.FieldID), quoteIdent(doctype.FieldDocStatus)))
	args = append(args, id, int(workflow.Draft))

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return convertDBError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: document %s left Draft during update", workflow.ErrInvalidTransition, id)
	}
	return nil
}
