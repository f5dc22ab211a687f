package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/docflow-io/docflow/internal/doctype"
	"github.com/docflow-io/docflow/internal/events"
	"github.com/docflow-io/docflow/internal/workflow"
)

// Delete removes a draft document. Submitted and cancelled documents are
// never physically removed; attempting it fails with an invalid-transition
// error. The delete carries the same docstatus guard as updates.
func (o *Operations) Delete(ctx context.Context, userID, id string) error {
	b := o.b

	err := b.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := b.fetch(ctx, tx, id)
		if err != nil {
			return err
		}

		status := workflow.DocStatus(docStatus(existing))
		if !workflow.CanEdit(status) {
			return fmt.Errorf("%w: cannot delete a %s document", workflow.ErrInvalidTransition, status)
		}

		query := b.store.dialect.Rebind(fmt.Sprintf(
			"DELETE FROM %s WHERE %s = ? AND %s = ?",
			quoteIdent(b.table), quoteIdent(doctype.FieldID), quoteIdent(doctype.FieldDocStatus)))

		result, err := tx.ExecContext(ctx, query, id, int(workflow.Draft))
		if err != nil {
			return convertDBError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: document %s left Draft during delete", workflow.ErrInvalidTransition, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.store.publish(events.Event{
		Type:    events.DocumentDeleted,
		DocType: b.docType.Name,
		ID:      id,
		User:    userID,
	})
	return nil
}
