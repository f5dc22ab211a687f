package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/docflow-io/docflow/internal/doctype"
	"github.com/docflow-io/docflow/internal/events"
	"github.com/docflow-io/docflow/internal/workflow"
)

// Submit moves a draft document to Submitted. Validation runs again in full:
// a document may predate a tightened required-field rule, and submission is
// the last gate before immutability. The transition itself is a
// compare-and-swap on docstatus, so two racing submits resolve to exactly
// one winner.
func (o *Operations) Submit(ctx context.Context, userID, id string) (Record, error) {
	record, err := o.transition(ctx, userID, id, workflow.TransitionSubmit)
	if err != nil {
		return nil, err
	}
	o.b.store.publish(events.Event{
		Type:    events.DocumentSubmitted,
		DocType: o.b.docType.Name,
		ID:      id,
		User:    userID,
	})
	return record, nil
}

// Cancel moves a submitted document to Cancelled, a terminal state
func (o *Operations) Cancel(ctx context.Context, userID, id string) (Record, error) {
	record, err := o.transition(ctx, userID, id, workflow.TransitionCancel)
	if err != nil {
		return nil, err
	}
	o.b.store.publish(events.Event{
		Type:    events.DocumentCancelled,
		DocType: o.b.docType.Name,
		ID:      id,
		User:    userID,
	})
	return record, nil
}

// transition performs submit or cancel with validation and the CAS write
func (o *Operations) transition(ctx context.Context, userID, id string, t workflow.Transition) (Record, error) {
	b := o.b
	if !b.docType.Submittable {
		return nil, fmt.Errorf("%w: %s is not submittable", workflow.ErrInvalidTransition, b.docType.Name)
	}

	var result Record
	err := b.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := b.fetch(ctx, tx, id)
		if err != nil {
			return err
		}

		current := workflow.DocStatus(docStatus(existing))
		if err := workflow.Check(t, current); err != nil {
			return err
		}

		if t == workflow.TransitionSubmit {
			values := b.fieldValues(existing)
			if err := b.Validate(ctx, tx, values); err != nil {
				return err
			}
		}

		query := b.store.dialect.Rebind(fmt.Sprintf(
			"UPDATE %s SET %s = ?, %s = ?, %s = ?, %s = %s + 1 WHERE %s = ? AND %s = ?",
			quoteIdent(b.table),
			quoteIdent(doctype.FieldDocStatus),
			quoteIdent(doctype.FieldModified),
			quoteIdent(doctype.FieldModifiedBy),
			quoteIdent(doctype.FieldIdx), quoteIdent(doctype.FieldIdx),
			quoteIdent(doctype.FieldID), quoteIdent(doctype.FieldDocStatus)))

		res, err := tx.ExecContext(ctx, query,
			int(t.Target()), time.Now().UTC(), userID, id, int(current))
		if err != nil {
			return convertDBError(err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			// The precondition held at read time but not at write time:
			// another transaction moved the document first.
			return fmt.Errorf("%w: document %s changed state concurrently", workflow.ErrInvalidTransition, id)
		}

		row, err := b.fetch(ctx, tx, id)
		if err != nil {
			return err
		}
		result = b.ToRecord(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Amend clones a cancelled document into a new draft. Every field value is
// copied, the clone records the original id as its amended_from
// back-reference, and the original stays untouched.
func (o *Operations) Amend(ctx context.Context, userID, id string) (Record, error) {
	b := o.b
	if !b.docType.Submittable {
		return nil, fmt.Errorf("%w: %s is not submittable", workflow.ErrInvalidTransition, b.docType.Name)
	}

	var amended Record
	err := b.withTx(ctx, func(tx *sql.Tx) error {
		existing, err := b.fetch(ctx, tx, id)
		if err != nil {
			return err
		}

		current := workflow.DocStatus(docStatus(existing))
		if err := workflow.Check(workflow.TransitionAmend, current); err != nil {
			return err
		}

		newID, err := b.amendedID(ctx, tx, id)
		if err != nil {
			return err
		}

		values := b.fieldValues(existing)
		if err := b.insert(ctx, tx, newID, userID, values, id); err != nil {
			return err
		}

		row, err := b.fetch(ctx, tx, newID)
		if err != nil {
			return err
		}
		amended = b.ToRecord(row)
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.store.publish(events.Event{
		Type:    events.DocumentAmended,
		DocType: b.docType.Name,
		ID:      asString(amended[doctype.FieldID]),
		User:    userID,
	})
	return amended, nil
}
