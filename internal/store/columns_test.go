package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docflow-io/docflow/internal/doctype"
)

func TestMapField(t *testing.T) {
	tests := []struct {
		name  string
		field doctype.Field
		want  string
	}{
		{"text default length", doctype.Field{Fieldname: "name", Type: doctype.TypeText}, "VARCHAR(140)"},
		{"text custom length", doctype.Field{Fieldname: "name", Type: doctype.TypeText, MaxLength: 40}, "VARCHAR(40)"},
		{"long text", doctype.Field{Fieldname: "body", Type: doctype.TypeLongText}, "TEXT"},
		{"int", doctype.Field{Fieldname: "qty", Type: doctype.TypeInt}, "INTEGER"},
		{"decimal", doctype.Field{Fieldname: "rate", Type: doctype.TypeDecimal}, "NUMERIC"},
		{"decimal with precision", doctype.Field{Fieldname: "rate", Type: doctype.TypeDecimal, Precision: 2}, "NUMERIC(18,2)"},
		{"check", doctype.Field{Fieldname: "active", Type: doctype.TypeCheck}, "BOOLEAN"},
		{"link", doctype.Field{Fieldname: "customer", Type: doctype.TypeLink, Target: "Customer"}, "VARCHAR(140)"},
		{"select", doctype.Field{Fieldname: "status", Type: doctype.TypeSelect, Options: []string{"Open"}}, "VARCHAR(140)"},
		{"date", doctype.Field{Fieldname: "due", Type: doctype.TypeDate}, "TIMESTAMP"},
		{"datetime", doctype.Field{Fieldname: "at", Type: doctype.TypeDatetime}, "TIMESTAMP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := MapField(&tt.field)
			assert.Equal(t, tt.field.Fieldname, spec.Name)
			assert.Equal(t, tt.want, spec.SQLType)
		})
	}
}

func TestCheckColumnDefaultsFalse(t *testing.T) {
	spec := MapField(&doctype.Field{Fieldname: "active", Type: doctype.TypeCheck})
	assert.Equal(t, "FALSE", spec.Default)
}

func TestTableName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Customer", "tab_customer"},
		{"SalesOrder", "tab_sales_order"},
		{"SalesInvoice", "tab_sales_invoice"},
		{"Item", "tab_item"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tableName(tt.in), tt.in)
	}
}

func TestCreateTableSQLShape(t *testing.T) {
	st := newTestStore(t)
	b := st.bound["Invoice"]

	ddl := b.CreateTableSQL()
	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS")
	assert.Contains(t, ddl, `"id"`)
	assert.Contains(t, ddl, "PRIMARY KEY")
	assert.Contains(t, ddl, `"amended_from"`, "submittable types carry the amendment column")

	plain := st.bound["Contact"]
	assert.NotContains(t, plain.CreateTableSQL(), "amended_from")
}
