package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/docflow-io/docflow/internal/doctype"
	"github.com/docflow-io/docflow/internal/events"
	"github.com/docflow-io/docflow/internal/transaction"
)

// Store materializes every registered document type into a queryable,
// persistable shape and hands out per-type Operations. Binding happens once
// at construction, against a populated registry; the request path only reads.
type Store struct {
	db       *sql.DB
	dialect  Dialect
	tx       *transaction.Manager
	registry *doctype.Registry
	bus      *events.Bus
	log      *zap.Logger

	bound map[string]*boundType
}

// boundType is one document type bound to its storage shape
type boundType struct {
	store   *Store
	docType *doctype.DocType
	table   string
	columns []ColumnSpec
}

// Option configures a Store
type Option func(*Store)

// WithEventBus wires lifecycle event publication
func WithEventBus(bus *events.Bus) Option {
	return func(s *Store) { s.bus = bus }
}

// WithLogger sets the store logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New binds every document type currently in the registry to a table shape.
// Call after module registration and before serving; definitions registered
// later are not visible to the store.
func New(db *sql.DB, dialect Dialect, registry *doctype.Registry, opts ...Option) *Store {
	s := &Store{
		db:       db,
		dialect:  dialect,
		tx:       transaction.NewManager(db),
		registry: registry,
		log:      zap.NewNop(),
		bound:    make(map[string]*boundType),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, name := range registry.Names() {
		dt, err := registry.Lookup(name)
		if err != nil {
			continue
		}
		s.bound[name] = s.bind(dt)
	}

	return s
}

// bind applies the field mapper to one definition
func (s *Store) bind(dt *doctype.DocType) *boundType {
	columns := standardColumns()
	if dt.Submittable {
		columns = append(columns, amendedFromColumn())
	}
	for _, f := range dt.Fields {
		columns = append(columns, MapField(f))
	}

	return &boundType{
		store:   s,
		docType: dt,
		table:   tableName(dt.Name),
		columns: columns,
	}
}

// Ops returns the operation set for a document type
func (s *Store) Ops(name string) (*Operations, error) {
	b, ok := s.bound[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", doctype.ErrNotFound, name)
	}
	return &Operations{b: b}, nil
}

// DB returns the underlying database handle
func (s *Store) DB() *sql.DB {
	return s.db
}

// publish emits a lifecycle event if a bus is wired. Callers invoke it only
// after their transaction has committed.
func (s *Store) publish(e events.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// Operations is the generic operation set for one document type. One fixed
// set serves every registered type; there is no per-type hand-written code.
type Operations struct {
	b *boundType
}

// DocType returns the definition the operations are bound to
func (o *Operations) DocType() *doctype.DocType {
	return o.b.docType
}

// Table returns the backing table name
func (o *Operations) Table() string {
	return o.b.table
}

// columnNames returns the bound column names in storage order
func (b *boundType) columnNames() []string {
	names := make([]string, len(b.columns))
	for i, c := range b.columns {
		names[i] = c.Name
	}
	return names
}

// withTx runs fn in one transaction; every operation goes through here so
// validate+persist is always all-or-nothing
func (b *boundType) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return b.store.tx.WithTransaction(ctx, fn)
}
