package store

import (
	"context"
	"errors"
)

// Get returns one document by id, shaped for output. Fails with ErrNotFound
// when the id is absent.
func (o *Operations) Get(ctx context.Context, id string) (Record, error) {
	row, err := o.b.fetch(ctx, o.b.store.db, id)
	if err != nil {
		return nil, err
	}
	return o.b.ToRecord(row), nil
}

// Exists reports whether a document id is present
func (o *Operations) Exists(ctx context.Context, id string) (bool, error) {
	_, err := o.b.fetch(ctx, o.b.store.db, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}
