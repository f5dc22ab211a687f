package doctype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFieldType(t *testing.T) {
	tests := []struct {
		in   string
		want FieldType
	}{
		{"Data", TypeText},
		{"Text", TypeText},
		{"LongText", TypeLongText},
		{"Int", TypeInt},
		{"Float", TypeDecimal},
		{"Currency", TypeDecimal},
		{"Check", TypeCheck},
		{"Link", TypeLink},
		{"Select", TypeSelect},
		{"Date", TypeDate},
		{"Datetime", TypeDatetime},
		// Unknown types degrade to opaque text instead of failing.
		{"Geolocation", TypeLongText},
		{"", TypeLongText},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFieldType(tt.in), "ParseFieldType(%q)", tt.in)
	}
}

func TestParseNamingRule(t *testing.T) {
	strategy, arg, ok := ParseNamingRule("field:customer_name")
	assert.True(t, ok)
	assert.Equal(t, NamingByField, strategy)
	assert.Equal(t, "customer_name", arg)

	strategy, arg, ok = ParseNamingRule("series:SO")
	assert.True(t, ok)
	assert.Equal(t, NamingBySeries, strategy)
	assert.Equal(t, "SO", arg)

	strategy, _, ok = ParseNamingRule("")
	assert.True(t, ok)
	assert.Equal(t, NamingRandom, strategy)

	_, _, ok = ParseNamingRule("field:")
	assert.False(t, ok)
	_, _, ok = ParseNamingRule("hash")
	assert.False(t, ok)
}

func TestFingerprintIgnoresCosmetics(t *testing.T) {
	a := taskType()
	b := taskType()
	b.Fields[0].Label = "Retitled"
	b.Fields[0].Hidden = true
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "labels and visibility are cosmetic")

	c := taskType()
	c.Fields[0].Required = false
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint(), "constraint changes alter the fingerprint")
}

func TestRolePermissionAllows(t *testing.T) {
	grant := RolePermission{Role: "Editor", Actions: []Action{ActionRead, ActionWrite}}
	assert.True(t, grant.Allows(ActionRead))
	assert.False(t, grant.Allows(ActionDelete))

	super := RolePermission{Role: "Admin", Actions: []Action{ActionWildcard}}
	assert.True(t, super.Allows(ActionCancel))
}

func TestVisibleFields(t *testing.T) {
	dt := taskType()
	dt.Fields = append(dt.Fields, &Field{Fieldname: "secret", Type: TypeText, Hidden: true})

	visible := dt.VisibleFields()
	assert.Len(t, visible, 2)
	for _, f := range visible {
		assert.NotEqual(t, "secret", f.Fieldname)
	}
}

func TestStandardFieldnames(t *testing.T) {
	for _, name := range []string{"id", "creation", "modified", "modified_by", "owner", "docstatus", "idx", "amended_from"} {
		assert.True(t, IsStandardFieldname(name), name)
	}
	assert.False(t, IsStandardFieldname("customer_name"))
}
