package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docflow-io/docflow/internal/doctype"
	"github.com/docflow-io/docflow/internal/events"
	"github.com/docflow-io/docflow/internal/workflow"
)

func contactType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "Contact",
		Module:       "CRM",
		NamingRule:   "field:contact_name",
		TitleField:   "contact_name",
		SearchFields: []string{"contact_name", "email"},
		SortField:    "contact_name",
		SortOrder:    doctype.SortAsc,
		Fields: []*doctype.Field{
			{Fieldname: "contact_name", Type: doctype.TypeText, Required: true, MaxLength: 100},
			{Fieldname: "email", Type: doctype.TypeText},
			{Fieldname: "contact_type", Type: doctype.TypeSelect,
				Options: []string{"Individual", "Company"}, Default: "Individual"},
			{Fieldname: "active", Type: doctype.TypeCheck, Default: true},
			{Fieldname: "score", Type: doctype.TypeInt},
			{Fieldname: "balance", Type: doctype.TypeDecimal, Precision: 2},
			{Fieldname: "joined", Type: doctype.TypeDate},
			{Fieldname: "notes", Type: doctype.TypeLongText},
			{Fieldname: "internal_ref", Type: doctype.TypeText, Hidden: true},
			{Fieldname: "grade", Type: doctype.TypeText, ReadOnly: true},
		},
	}
}

func invoiceType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "Invoice",
		Module:       "Accounts",
		NamingRule:   "series:INV",
		SearchFields: []string{"remarks"},
		SortField:    "posting_date",
		SortOrder:    doctype.SortDesc,
		Submittable:  true,
		Fields: []*doctype.Field{
			{Fieldname: "contact", Type: doctype.TypeLink, Required: true, Target: "Contact"},
			{Fieldname: "posting_date", Type: doctype.TypeDate, Required: true},
			{Fieldname: "amount", Type: doctype.TypeDecimal, Precision: 2},
			{Fieldname: "remarks", Type: doctype.TypeLongText},
		},
	}
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	registry := doctype.NewRegistry()
	require.NoError(t, registry.Register(contactType()))
	require.NoError(t, registry.Register(invoiceType()))
	registry.Freeze()

	st := New(db, DialectSQLite, registry, opts...)
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func mustOps(t *testing.T, st *Store, name string) *Operations {
	t.Helper()
	ops, err := st.Ops(name)
	require.NoError(t, err)
	return ops
}

func createContact(t *testing.T, st *Store, name string, extra map[string]interface{}) Record {
	t.Helper()
	input := map[string]interface{}{"contact_name": name}
	for k, v := range extra {
		input[k] = v
	}
	rec, err := mustOps(t, st, "Contact").Create(context.Background(), "alice", input)
	require.NoError(t, err)
	return rec
}

func createInvoice(t *testing.T, st *Store, contact string) Record {
	t.Helper()
	rec, err := mustOps(t, st, "Invoice").Create(context.Background(), "alice", map[string]interface{}{
		"contact":      contact,
		"posting_date": "2026-08-01",
		"amount":       150.0,
	})
	require.NoError(t, err)
	return rec
}

func TestCreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created := createContact(t, st, "Acme Corp", map[string]interface{}{
		"email":        "info@acme.example",
		"score":        float64(7),
		"balance":      "120.50",
		"joined":       "2026-01-15",
		"internal_ref": "ref-1",
	})

	assert.Equal(t, "Acme Corp", created["id"], "id comes from the naming field")
	assert.Equal(t, 0, created["docstatus"])
	assert.Equal(t, "alice", created["owner"])
	assert.Equal(t, "alice", created["modified_by"])
	assert.Equal(t, 0, created["idx"])
	assert.NotEmpty(t, created["creation"])
	assert.Equal(t, "Individual", created["contact_type"], "select default applied")
	assert.Equal(t, true, created["active"], "check default applied")
	assert.EqualValues(t, 7, created["score"])
	assert.Equal(t, 120.50, created["balance"], "string numbers coerce")
	assert.Equal(t, "2026-01-15T00:00:00Z", created["joined"])
	assert.NotContains(t, created, "internal_ref", "hidden fields never appear in output")
	assert.NotContains(t, created, "amended_from", "non-submittable types have no amendment trail")

	got, err := mustOps(t, st, "Contact").Get(ctx, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, created["id"], got["id"])
	assert.Equal(t, created["email"], got["email"])
	assert.Equal(t, created["joined"], got["joined"])
}

func TestCreateUnknownFieldsDropped(t *testing.T) {
	st := newTestStore(t)

	rec := createContact(t, st, "Beta LLC", map[string]interface{}{
		"no_such_field": "ignored",
	})
	assert.NotContains(t, rec, "no_such_field")
}

func TestCreateValidationCollectsAll(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ops := mustOps(t, st, "Contact")

	_, err := ops.Create(ctx, "alice", map[string]interface{}{
		"contact_type": "Conglomerate",
		"score":        "not a number",
	})
	require.Error(t, err)

	var ve *ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "contact_name", "missing required field reported")
	assert.Contains(t, ve.Fields, "contact_type", "bad select option reported")
	assert.Contains(t, ve.Fields, "score", "uncoercible value reported")
	assert.GreaterOrEqual(t, ve.Count(), 3, "all violations collected in one pass")

	// Nothing persisted.
	result, listErr := ops.List(ctx, ListOptions{})
	require.NoError(t, listErr)
	assert.Zero(t, result.Total)
}

func TestCreateTextLengthBound(t *testing.T) {
	st := newTestStore(t)

	_, err := mustOps(t, st, "Contact").Create(context.Background(), "alice", map[string]interface{}{
		"contact_name": strings.Repeat("x", 101),
	})
	var ve *ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "contact_name")
}

func TestCreateDuplicateID(t *testing.T) {
	st := newTestStore(t)

	createContact(t, st, "Gamma Inc", nil)
	_, err := mustOps(t, st, "Contact").Create(context.Background(), "alice", map[string]interface{}{
		"contact_name": "Gamma Inc",
	})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestSeriesNaming(t *testing.T) {
	st := newTestStore(t)

	createContact(t, st, "Acme Corp", nil)
	first := createInvoice(t, st, "Acme Corp")
	second := createInvoice(t, st, "Acme Corp")

	assert.Equal(t, "INV-00001", first["id"])
	assert.Equal(t, "INV-00002", second["id"])
}

func TestRequiredLinkMustResolve(t *testing.T) {
	st := newTestStore(t)

	_, err := mustOps(t, st, "Invoice").Create(context.Background(), "alice", map[string]interface{}{
		"contact":      "Nobody",
		"posting_date": "2026-08-01",
	})
	var ve *ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "contact")
}

func TestGetNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := mustOps(t, st, "Contact").Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ops := mustOps(t, st, "Contact")

	createContact(t, st, "Delta Co", map[string]interface{}{"grade": "A"})

	updated, err := ops.Update(ctx, "bob", "Delta Co", map[string]interface{}{
		"email": "sales@delta.example",
		"grade": "F", // read-only, silently dropped
	})
	require.NoError(t, err)

	assert.Equal(t, "sales@delta.example", updated["email"])
	assert.Equal(t, "A", updated["grade"], "read-only field unchanged by update")
	assert.Equal(t, "bob", updated["modified_by"])
	assert.Equal(t, "alice", updated["owner"], "owner never changes")
	assert.Equal(t, 1, updated["idx"], "sequence bumps on every write")
}

func TestUpdateMergeRevalidates(t *testing.T) {
	st := newTestStore(t)

	createContact(t, st, "Echo Ltd", nil)
	_, err := mustOps(t, st, "Contact").Update(context.Background(), "alice", "Echo Ltd",
		map[string]interface{}{"contact_type": "Syndicate"})

	var ve *ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "contact_type")
}

func TestUpdateSubmittedRejected(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ops := mustOps(t, st, "Invoice")

	createContact(t, st, "Acme Corp", nil)
	inv := createInvoice(t, st, "Acme Corp")
	id := inv["id"].(string)

	_, err := ops.Submit(ctx, "alice", id)
	require.NoError(t, err)

	_, err = ops.Update(ctx, "alice", id, map[string]interface{}{"amount": 999.0})
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestDeleteOnlyDraft(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ops := mustOps(t, st, "Invoice")

	createContact(t, st, "Acme Corp", nil)

	draft := createInvoice(t, st, "Acme Corp")
	require.NoError(t, ops.Delete(ctx, "alice", draft["id"].(string)))
	_, err := ops.Get(ctx, draft["id"].(string))
	assert.ErrorIs(t, err, ErrNotFound)

	submitted := createInvoice(t, st, "Acme Corp")
	_, err = ops.Submit(ctx, "alice", submitted["id"].(string))
	require.NoError(t, err)

	err = ops.Delete(ctx, "alice", submitted["id"].(string))
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	got, err := ops.Get(ctx, submitted["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, 1, got["docstatus"], "rejected delete leaves the document intact")
}

func TestSubmitLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ops := mustOps(t, st, "Invoice")

	createContact(t, st, "Acme Corp", nil)
	inv := createInvoice(t, st, "Acme Corp")
	id := inv["id"].(string)

	submitted, err := ops.Submit(ctx, "bob", id)
	require.NoError(t, err)
	assert.Equal(t, 1, submitted["docstatus"])
	assert.Equal(t, "bob", submitted["modified_by"])

	// Submit is exactly-once.
	_, err = ops.Submit(ctx, "bob", id)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	cancelled, err := ops.Cancel(ctx, "bob", id)
	require.NoError(t, err)
	assert.Equal(t, 2, cancelled["docstatus"])

	// Cancelled is terminal.
	_, err = ops.Submit(ctx, "bob", id)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	_, err = ops.Cancel(ctx, "bob", id)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestCancelRequiresSubmitted(t *testing.T) {
	st := newTestStore(t)

	createContact(t, st, "Acme Corp", nil)
	inv := createInvoice(t, st, "Acme Corp")

	_, err := mustOps(t, st, "Invoice").Cancel(context.Background(), "alice", inv["id"].(string))
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestSubmitNotSubmittable(t *testing.T) {
	st := newTestStore(t)

	createContact(t, st, "Acme Corp", nil)
	_, err := mustOps(t, st, "Contact").Submit(context.Background(), "alice", "Acme Corp")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestAmendClonesCancelled(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ops := mustOps(t, st, "Invoice")

	createContact(t, st, "Acme Corp", nil)
	inv := createInvoice(t, st, "Acme Corp")
	id := inv["id"].(string)

	// Amend requires a cancelled original.
	_, err := ops.Amend(ctx, "alice", id)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	_, err = ops.Submit(ctx, "alice", id)
	require.NoError(t, err)
	_, err = ops.Cancel(ctx, "alice", id)
	require.NoError(t, err)

	amended, err := ops.Amend(ctx, "carol", id)
	require.NoError(t, err)

	assert.Equal(t, id+"-1", amended["id"])
	assert.Equal(t, 0, amended["docstatus"], "amendment starts as a fresh draft")
	assert.Equal(t, id, amended["amended_from"])
	assert.Equal(t, "carol", amended["owner"])
	assert.Equal(t, inv["amount"], amended["amount"], "field values carried over")

	original, err := ops.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, original["docstatus"], "original stays cancelled")

	// A second amendment of the same original picks the next free suffix.
	second, err := ops.Amend(ctx, "carol", id)
	require.NoError(t, err)
	assert.Equal(t, id+"-2", second["id"])
}

func TestListPagination(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ops := mustOps(t, st, "Contact")

	for i := 1; i <= 25; i++ {
		createContact(t, st, fmt.Sprintf("Contact %02d", i), nil)
	}

	result, err := ops.List(ctx, ListOptions{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, result.Total)
	assert.Equal(t, 3, result.Pages)
	assert.Len(t, result.Data, 10)
	assert.Equal(t, "Contact 01", result.Data[0]["id"], "sorted by the default sort field")

	last, err := ops.List(ctx, ListOptions{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, last.Data, 5)

	beyond, err := ops.List(ctx, ListOptions{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Data)
	assert.Equal(t, 25, beyond.Total)
}

func TestListDefaultsAndClamp(t *testing.T) {
	st := newTestStore(t)
	ops := mustOps(t, st, "Contact")

	result, err := ops.List(context.Background(), ListOptions{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, maxPageLimit, result.Limit)
}

func TestListFilters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ops := mustOps(t, st, "Contact")

	createContact(t, st, "Solo Trader", map[string]interface{}{"contact_type": "Individual"})
	createContact(t, st, "Mega Corp", map[string]interface{}{"contact_type": "Company"})
	createContact(t, st, "Giga Corp", map[string]interface{}{"contact_type": "Company"})

	result, err := ops.List(ctx, ListOptions{Filters: map[string]string{"contact_type": "Company"}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	for _, rec := range result.Data {
		assert.Equal(t, "Company", rec["contact_type"])
	}
}

func TestListFilterByDocStatus(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ops := mustOps(t, st, "Invoice")

	createContact(t, st, "Acme", nil)
	createInvoice(t, st, "Acme")
	second := createInvoice(t, st, "Acme")
	_, err := ops.Submit(ctx, "alice", second["id"].(string))
	require.NoError(t, err)

	submitted, err := ops.List(ctx, ListOptions{Filters: map[string]string{"docstatus": "1"}})
	require.NoError(t, err)
	require.Equal(t, 1, submitted.Total)
	assert.Equal(t, second["id"], submitted.Data[0]["id"])

	drafts, err := ops.List(ctx, ListOptions{Filters: map[string]string{"docstatus": "0"}})
	require.NoError(t, err)
	assert.Equal(t, 1, drafts.Total)
}

func TestBuildWhereBindsDocStatusAsInt(t *testing.T) {
	st := newTestStore(t)
	b := st.bound["Invoice"]

	where, args := b.buildWhere(ListOptions{Filters: map[string]string{"docstatus": "1"}})
	assert.Contains(t, where, `"docstatus" = ?`)
	require.Len(t, args, 1)
	assert.Equal(t, 1, args[0])

	// A non-numeric value binds a status no document can have.
	_, args = b.buildWhere(ListOptions{Filters: map[string]string{"docstatus": "junk"}})
	require.Len(t, args, 1)
	assert.Equal(t, -1, args[0])
}

func TestListSearch(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	ops := mustOps(t, st, "Contact")

	createContact(t, st, "Northwind", map[string]interface{}{"email": "hello@northwind.example"})
	createContact(t, st, "Southbridge", map[string]interface{}{"email": "contact@south.example"})

	result, err := ops.List(ctx, ListOptions{Search: "north"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "Northwind", result.Data[0]["id"])

	// Search spans every configured search field.
	byEmail, err := ops.List(ctx, ListOptions{Search: "south.example"})
	require.NoError(t, err)
	assert.Equal(t, 1, byEmail.Total)
}

func TestOpsUnknownType(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Ops("Phantom")
	assert.ErrorIs(t, err, doctype.ErrNotFound)
}

func TestEventsPublishedAfterCommit(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	st := newTestStore(t, WithEventBus(bus))
	createContact(t, st, "Acme Corp", nil)

	select {
	case e := <-ch:
		assert.Equal(t, events.DocumentCreated, e.Type)
		assert.Equal(t, "Contact", e.DocType)
		assert.Equal(t, "Acme Corp", e.ID)
		assert.Equal(t, "alice", e.User)
	default:
		t.Fatal("expected a created event on the bus")
	}
}

func TestNoEventOnFailedCreate(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	st := newTestStore(t, WithEventBus(bus))
	_, err := mustOps(t, st, "Contact").Create(context.Background(), "alice", map[string]interface{}{})
	require.True(t, errors.As(err, new(*ValidationErrors)))

	select {
	case e := <-ch:
		t.Fatalf("unexpected event %v for a rejected create", e.Type)
	default:
	}
}
