package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docflow-io/docflow/internal/doctype"
)

func orderType() *doctype.DocType {
	return &doctype.DocType{
		Name: "PurchaseOrder",
		Permissions: []doctype.RolePermission{
			{Role: "Buyer", Actions: []doctype.Action{
				doctype.ActionRead, doctype.ActionWrite, doctype.ActionCreate}},
			{Role: "Procurement Manager", Actions: []doctype.Action{doctype.ActionWildcard}},
			{Role: "Auditor", Actions: []doctype.Action{doctype.ActionRead}},
		},
	}
}

func TestAllowed(t *testing.T) {
	e := NewEvaluator()
	dt := orderType()

	tests := []struct {
		name   string
		roles  []string
		action doctype.Action
		want   bool
	}{
		{"granted action", []string{"Buyer"}, doctype.ActionCreate, true},
		{"ungranted action", []string{"Buyer"}, doctype.ActionDelete, false},
		{"wildcard action grant", []string{"Procurement Manager"}, doctype.ActionCancel, true},
		{"read only role", []string{"Auditor"}, doctype.ActionWrite, false},
		{"any matching role suffices", []string{"Auditor", "Buyer"}, doctype.ActionWrite, true},
		{"no roles", nil, doctype.ActionRead, false},
		{"unknown role", []string{"Visitor"}, doctype.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Allowed(tt.roles, tt.action, dt))
		})
	}
}

func TestDenyByDefault(t *testing.T) {
	e := NewEvaluator()
	bare := &doctype.DocType{Name: "Unlisted"}

	assert.False(t, e.Allowed([]string{"Buyer"}, doctype.ActionRead, bare),
		"a type with no permission list denies everything")
}

func TestWildcardRole(t *testing.T) {
	e := NewEvaluator()
	open := &doctype.DocType{
		Name: "Announcement",
		Permissions: []doctype.RolePermission{
			{Role: doctype.RoleWildcard, Actions: []doctype.Action{doctype.ActionRead}},
		},
	}

	assert.True(t, e.Allowed([]string{"Anyone"}, doctype.ActionRead, open))
	assert.True(t, e.Allowed(nil, doctype.ActionRead, open))
	assert.False(t, e.Allowed([]string{"Anyone"}, doctype.ActionWrite, open))
}

func TestCheckError(t *testing.T) {
	e := NewEvaluator()
	dt := orderType()

	assert.NoError(t, e.Check([]string{"Buyer"}, doctype.ActionRead, dt))

	err := e.Check([]string{"Auditor"}, doctype.ActionDelete, dt)
	require.Error(t, err)

	var permErr *Error
	require.ErrorAs(t, err, &permErr)
	assert.Equal(t, "PurchaseOrder", permErr.DocType)
	assert.Equal(t, doctype.ActionDelete, permErr.Action)
	assert.Contains(t, err.Error(), "permission denied")
}
