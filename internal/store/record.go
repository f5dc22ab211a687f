package store

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/docflow-io/docflow/internal/doctype"
)

// Record is a document as it moves through the engine: one value per column,
// keyed by fieldname. Records are owned by the storage layer; operations
// re-read and rebuild them per transaction rather than caching across
// requests.
type Record map[string]interface{}

// dateLayouts are accepted for Date/Datetime input, tried in order
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// coerceValue converts a client-supplied value into the canonical Go type
// for the field. JSON decoding hands us float64 for every number and string
// for every date, so the coercions here are the ones an API body actually
// produces.
func coerceValue(f *doctype.Field, value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}

	switch f.Type {
	case doctype.TypeText, doctype.TypeLongText, doctype.TypeLink, doctype.TypeSelect:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		return s, nil

	case doctype.TypeInt:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("expected integer, got %v", v)
			}
			return int64(v), nil
		case string:
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("expected integer, got %q", v)
			}
			return n, nil
		default:
			return nil, fmt.Errorf("expected integer, got %T", value)
		}

	case doctype.TypeDecimal:
		switch v := value.(type) {
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case float64:
			return v, nil
		case string:
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("expected number, got %q", v)
			}
			return n, nil
		default:
			return nil, fmt.Errorf("expected number, got %T", value)
		}

	case doctype.TypeCheck:
		switch v := value.(type) {
		case bool:
			return v, nil
		case int64:
			return v != 0, nil
		case float64:
			return v != 0, nil
		default:
			return nil, fmt.Errorf("expected boolean, got %T", value)
		}

	case doctype.TypeDate, doctype.TypeDatetime:
		switch v := value.(type) {
		case time.Time:
			return v.UTC(), nil
		case string:
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, v); err == nil {
					return t.UTC(), nil
				}
			}
			return nil, fmt.Errorf("expected date, got %q", v)
		default:
			return nil, fmt.Errorf("expected date, got %T", value)
		}
	}

	return value, nil
}

// applyDefaults fills missing fields with their declared defaults. Check
// fields without an explicit default become false so boolean columns never
// carry NULL.
func applyDefaults(dt *doctype.DocType, values Record) {
	for _, f := range dt.Fields {
		if _, ok := values[f.Fieldname]; ok {
			continue
		}
		if f.Default != nil {
			if v, err := coerceValue(f, f.Default); err == nil {
				values[f.Fieldname] = v
			}
			continue
		}
		if f.Type == doctype.TypeCheck {
			values[f.Fieldname] = false
		}
	}
}

// sanitizeInput copies the client payload keeping only declared fields.
// Unknown keys are dropped silently; with stripReadOnly set (updates),
// read-only fields are dropped too, also silently.
func sanitizeInput(dt *doctype.DocType, input map[string]interface{}, stripReadOnly bool) Record {
	out := make(Record, len(input))
	for key, value := range input {
		f := dt.Field(key)
		if f == nil {
			continue
		}
		if stripReadOnly && f.ReadOnly {
			continue
		}
		out[key] = value
	}
	return out
}

// normalizeStored converts driver-scanned values back into canonical types.
// sqlite hands back int64 for booleans and []byte for some text columns;
// both directions meet here so every caller sees the same shapes.
func normalizeStored(f *doctype.Field, value interface{}) interface{} {
	if value == nil {
		return nil
	}

	switch f.Type {
	case doctype.TypeCheck:
		switch v := value.(type) {
		case bool:
			return v
		case int64:
			return v != 0
		}
	case doctype.TypeDecimal:
		switch v := value.(type) {
		case float64:
			return v
		case int64:
			return float64(v)
		case []byte:
			if n, err := strconv.ParseFloat(string(v), 64); err == nil {
				return n
			}
		case string:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				return n
			}
		}
	case doctype.TypeText, doctype.TypeLongText, doctype.TypeLink, doctype.TypeSelect:
		if b, ok := value.([]byte); ok {
			return string(b)
		}
	case doctype.TypeDate, doctype.TypeDatetime:
		switch v := value.(type) {
		case time.Time:
			return v.UTC()
		case string:
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, v); err == nil {
					return t.UTC()
				}
			}
		}
	}
	return value
}

// ToRecord shapes a stored row into the payload returned by generated
// list/detail responses: hidden fields are omitted, times are RFC3339
// strings, and docstatus is a plain integer.
func (b *boundType) ToRecord(row Record) Record {
	out := make(Record, len(row))

	out[doctype.FieldID] = asString(row[doctype.FieldID])
	out[doctype.FieldCreation] = formatTime(row[doctype.FieldCreation])
	out[doctype.FieldModified] = formatTime(row[doctype.FieldModified])
	out[doctype.FieldModifiedBy] = asString(row[doctype.FieldModifiedBy])
	out[doctype.FieldOwner] = asString(row[doctype.FieldOwner])
	out[doctype.FieldDocStatus] = asInt(row[doctype.FieldDocStatus])
	out[doctype.FieldIdx] = asInt(row[doctype.FieldIdx])
	if b.docType.Submittable {
		out[doctype.FieldAmendedFrom] = asString(row[doctype.FieldAmendedFrom])
	}

	for _, f := range b.docType.Fields {
		if f.Hidden {
			continue
		}
		v := normalizeStored(f, row[f.Fieldname])
		if t, ok := v.(time.Time); ok {
			out[f.Fieldname] = t.Format(time.RFC3339)
			continue
		}
		out[f.Fieldname] = v
	}

	return out
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func formatTime(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
