// Package store binds registered document types to concrete storage shapes
// and provides the generic CRUD and lifecycle operations every generated API
// route delegates to. Records are plain map[string]interface{} values; the
// schema stays in the doctype definition, never in Go structs.
package store

import (
	"fmt"

	"github.com/docflow-io/docflow/internal/doctype"
)

// defaultTextLength bounds Text columns when the field gives no maxLength
const defaultTextLength = 140

// ColumnSpec is the concrete storage shape of one field
type ColumnSpec struct {
	Name    string
	SQLType string

	NotNull bool
	Default string
}

// MapField translates an abstract field definition into its storage column.
// The mapping is pure and deterministic: the same field always yields the
// same spec. Unknown field types have already been folded into LongText by
// the doctype parser, so every declared type maps here.
func MapField(f *doctype.Field) ColumnSpec {
	spec := ColumnSpec{Name: f.Fieldname}

	switch f.Type {
	case doctype.TypeText:
		length := f.MaxLength
		if length <= 0 {
			length = defaultTextLength
		}
		spec.SQLType = fmt.Sprintf("VARCHAR(%d)", length)
	case doctype.TypeLongText:
		spec.SQLType = "TEXT"
	case doctype.TypeInt:
		spec.SQLType = "INTEGER"
	case doctype.TypeDecimal:
		if f.Precision > 0 {
			spec.SQLType = fmt.Sprintf("NUMERIC(18,%d)", f.Precision)
		} else {
			spec.SQLType = "NUMERIC"
		}
	case doctype.TypeCheck:
		spec.SQLType = "BOOLEAN"
		spec.Default = "FALSE"
	case doctype.TypeLink, doctype.TypeSelect:
		// Links hold the referenced document's id; they are soft references,
		// not foreign keys, matching the source system's Link semantics.
		spec.SQLType = fmt.Sprintf("VARCHAR(%d)", defaultTextLength)
	case doctype.TypeDate, doctype.TypeDatetime:
		spec.SQLType = "TIMESTAMP"
	default:
		spec.SQLType = "TEXT"
	}

	return spec
}

// standardColumns are the engine-managed columns present on every table,
// in storage order
func standardColumns() []ColumnSpec {
	return []ColumnSpec{
		{Name: doctype.FieldID, SQLType: fmt.Sprintf("VARCHAR(%d)", defaultTextLength), NotNull: true},
		{Name: doctype.FieldCreation, SQLType: "TIMESTAMP", NotNull: true},
		{Name: doctype.FieldModified, SQLType: "TIMESTAMP", NotNull: true},
		{Name: doctype.FieldModifiedBy, SQLType: fmt.Sprintf("VARCHAR(%d)", defaultTextLength)},
		{Name: doctype.FieldOwner, SQLType: fmt.Sprintf("VARCHAR(%d)", defaultTextLength)},
		{Name: doctype.FieldDocStatus, SQLType: "INTEGER", NotNull: true, Default: "0"},
		{Name: doctype.FieldIdx, SQLType: "INTEGER", NotNull: true, Default: "0"},
	}
}

// amendedFromColumn is added to submittable types only
func amendedFromColumn() ColumnSpec {
	return ColumnSpec{Name: doctype.FieldAmendedFrom, SQLType: fmt.Sprintf("VARCHAR(%d)", defaultTextLength)}
}
