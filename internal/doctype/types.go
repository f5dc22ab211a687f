// Package doctype defines the declarative document-type metadata that drives
// the rest of the engine: field definitions, naming rules, role permissions,
// and the process-wide registry they live in.
package doctype

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// FieldType represents the abstract type of a document field
type FieldType int

const (
	// TypeText is a bounded string (default length 140)
	TypeText FieldType = iota
	// TypeLongText is an unbounded text value
	TypeLongText
	// TypeInt is an integer value
	TypeInt
	// TypeDecimal is a fixed-precision numeric value
	TypeDecimal
	// TypeCheck is a boolean flag, defaulting to false
	TypeCheck
	// TypeLink is a soft reference holding another document's id
	TypeLink
	// TypeSelect is a string constrained to a fixed option list
	TypeSelect
	// TypeDate is a calendar date
	TypeDate
	// TypeDatetime is a point in time
	TypeDatetime
)

// String returns the string representation of the field type
func (t FieldType) String() string {
	switch t {
	case TypeText:
		return "Text"
	case TypeLongText:
		return "LongText"
	case TypeInt:
		return "Int"
	case TypeDecimal:
		return "Decimal"
	case TypeCheck:
		return "Check"
	case TypeLink:
		return "Link"
	case TypeSelect:
		return "Select"
	case TypeDate:
		return "Date"
	case TypeDatetime:
		return "Datetime"
	default:
		return "unknown"
	}
}

// ParseFieldType converts a string to a FieldType. Unknown names fall back to
// TypeLongText rather than erroring so that definitions written against a
// newer engine still register; the value round-trips as opaque text.
func ParseFieldType(s string) FieldType {
	switch s {
	case "Text", "Data":
		return TypeText
	case "LongText":
		return TypeLongText
	case "Int":
		return TypeInt
	case "Decimal", "Float", "Currency":
		return TypeDecimal
	case "Check":
		return TypeCheck
	case "Link":
		return TypeLink
	case "Select":
		return TypeSelect
	case "Date":
		return TypeDate
	case "Datetime":
		return TypeDatetime
	default:
		return TypeLongText
	}
}

// Field describes a single field of a document type
type Field struct {
	Fieldname string
	Type      FieldType
	Label     string

	Required bool
	ReadOnly bool
	Hidden   bool

	// Default is applied on create when the client omits the field
	Default interface{}

	// MaxLength bounds TypeText values; 0 means the engine default of 140
	MaxLength int

	// Precision applies to TypeDecimal; 0 means driver default
	Precision int

	// Options holds the option list for TypeSelect, or the target document
	// type name for TypeLink
	Options []string

	// Target is the referenced document type for TypeLink
	Target string
}

// signature returns the portion of the field that participates in the
// definition fingerprint. Cosmetic attributes (Label, Hidden) are excluded so
// a re-import that only retitles fields stays idempotent.
func (f *Field) signature() string {
	return fmt.Sprintf("%s:%s:req=%t:ro=%t:len=%d:prec=%d:opts=%s:target=%s",
		f.Fieldname, f.Type, f.Required, f.ReadOnly, f.MaxLength, f.Precision,
		strings.Join(f.Options, "|"), f.Target)
}

// Action is a permission-gated operation on a document type
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
	ActionSubmit Action = "submit"
	ActionCancel Action = "cancel"
	ActionAmend  Action = "amend"
)

// ActionWildcard matches every action when granted to a role
const ActionWildcard Action = "*"

// RoleWildcard matches every role; used for superuser-equivalent grants
const RoleWildcard = "*"

// RolePermission grants a set of actions to a single role
type RolePermission struct {
	Role    string
	Actions []Action
}

// Allows reports whether the grant covers the given action
func (p RolePermission) Allows(action Action) bool {
	for _, a := range p.Actions {
		if a == action || a == ActionWildcard {
			return true
		}
	}
	return false
}

// SortOrder is the direction applied to a document type's default sort
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// DocType is a registered document-type definition. It is immutable once
// registered; the registry hands out shared pointers that must not be
// mutated after boot.
type DocType struct {
	Name   string
	Module string

	// NamingRule decides how document ids are assigned on create:
	// "field:<fieldname>" derives the id from a field value,
	// "series:<prefix>" allocates PREFIX-NNNNN from a counter.
	// Empty falls back to "<Name>-<uuid8>".
	NamingRule string

	TitleField   string
	SearchFields []string
	SortField    string
	SortOrder    SortOrder

	// Submittable document types participate in the draft/submit/cancel
	// workflow; others only ever exist as editable drafts.
	Submittable bool

	Fields      []*Field
	Permissions []RolePermission
}

// Field returns the field with the given name, or nil
func (dt *DocType) Field(name string) *Field {
	for _, f := range dt.Fields {
		if f.Fieldname == name {
			return f
		}
	}
	return nil
}

// HasField reports whether the document type declares the field
func (dt *DocType) HasField(name string) bool {
	return dt.Field(name) != nil
}

// VisibleFields returns the fields that appear in generated payloads
func (dt *DocType) VisibleFields() []*Field {
	visible := make([]*Field, 0, len(dt.Fields))
	for _, f := range dt.Fields {
		if !f.Hidden {
			visible = append(visible, f)
		}
	}
	return visible
}

// Fingerprint returns a stable digest of the definition's field signature.
// Two definitions with the same name are considered compatible if and only
// if their fingerprints match.
func (dt *DocType) Fingerprint() string {
	sigs := make([]string, 0, len(dt.Fields))
	for _, f := range dt.Fields {
		sigs = append(sigs, f.signature())
	}
	sort.Strings(sigs)
	sum := sha256.Sum256([]byte(dt.Name + "\n" + strings.Join(sigs, "\n")))
	return hex.EncodeToString(sum[:])
}

// Validate checks the structural integrity of the definition itself, not of
// any document data
func (dt *DocType) Validate() error {
	if dt.Name == "" {
		return fmt.Errorf("document type name is required")
	}
	seen := make(map[string]bool, len(dt.Fields))
	for _, f := range dt.Fields {
		if f.Fieldname == "" {
			return fmt.Errorf("%s: field with empty fieldname", dt.Name)
		}
		if IsReservedFieldname(f.Fieldname) {
			return fmt.Errorf("%s: fieldname %q is reserved", dt.Name, f.Fieldname)
		}
		if seen[f.Fieldname] {
			return fmt.Errorf("%s: duplicate fieldname %q", dt.Name, f.Fieldname)
		}
		seen[f.Fieldname] = true
		if f.Type == TypeSelect && len(f.Options) == 0 {
			return fmt.Errorf("%s: select field %q has no options", dt.Name, f.Fieldname)
		}
		if f.Type == TypeLink && f.Target == "" {
			return fmt.Errorf("%s: link field %q has no target", dt.Name, f.Fieldname)
		}
	}
	if rule, value, ok := ParseNamingRule(dt.NamingRule); !ok {
		return fmt.Errorf("%s: invalid naming rule %q", dt.Name, dt.NamingRule)
	} else if rule == NamingByField && !seen[value] {
		return fmt.Errorf("%s: naming rule references unknown field %q", dt.Name, value)
	}
	if dt.SortField != "" && !seen[dt.SortField] && !IsStandardFieldname(dt.SortField) {
		return fmt.Errorf("%s: sort field %q does not exist", dt.Name, dt.SortField)
	}
	for _, sf := range dt.SearchFields {
		if !seen[sf] {
			return fmt.Errorf("%s: search field %q does not exist", dt.Name, sf)
		}
	}
	return nil
}

// NamingStrategy identifies how a document id is derived
type NamingStrategy int

const (
	// NamingByField derives the id from a field value
	NamingByField NamingStrategy = iota
	// NamingBySeries allocates sequential ids under a prefix
	NamingBySeries
	// NamingRandom falls back to "<Name>-<uuid8>"
	NamingRandom
)

// ParseNamingRule splits a naming rule into its strategy and argument.
// The empty rule is valid and maps to NamingRandom.
func ParseNamingRule(rule string) (NamingStrategy, string, bool) {
	switch {
	case rule == "":
		return NamingRandom, "", true
	case strings.HasPrefix(rule, "field:"):
		name := strings.TrimPrefix(rule, "field:")
		return NamingByField, name, name != ""
	case strings.HasPrefix(rule, "series:"):
		prefix := strings.TrimPrefix(rule, "series:")
		return NamingBySeries, prefix, prefix != ""
	default:
		return NamingRandom, "", false
	}
}

// Standard fieldnames carried by every document regardless of its type
const (
	FieldID         = "id"
	FieldCreation   = "creation"
	FieldModified   = "modified"
	FieldModifiedBy = "modified_by"
	FieldOwner      = "owner"
	FieldDocStatus  = "docstatus"
	FieldIdx        = "idx"

	// FieldAmendedFrom is present on submittable types only and records the
	// cancelled document an amendment was cloned from
	FieldAmendedFrom = "amended_from"
)

// IsStandardFieldname reports whether the name is one of the engine-managed
// columns present on every document
func IsStandardFieldname(name string) bool {
	switch name {
	case FieldID, FieldCreation, FieldModified, FieldModifiedBy,
		FieldOwner, FieldDocStatus, FieldIdx, FieldAmendedFrom:
		return true
	}
	return false
}

// IsReservedFieldname reports whether user definitions may not declare the
// name themselves
func IsReservedFieldname(name string) bool {
	return IsStandardFieldname(name)
}
