package doctype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskType() *DocType {
	return &DocType{
		Name:       "Task",
		Module:     "Projects",
		NamingRule: "series:TASK",
		Fields: []*Field{
			{Fieldname: "subject", Type: TypeText, Required: true},
			{Fieldname: "priority", Type: TypeSelect, Options: []string{"Low", "High"}},
		},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(taskType()))

	dt, err := r.Lookup("Task")
	require.NoError(t, err)
	assert.Equal(t, "Task", dt.Name)
	assert.True(t, r.Exists("Task"))
	assert.Equal(t, 1, r.Count())
}

func TestLookupUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("Nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterIdenticalIsIdempotent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(taskType()))
	assert.NoError(t, r.Register(taskType()), "re-registering the same definition is a no-op")
	assert.Equal(t, 1, r.Count())
}

func TestRegisterConflictingFails(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(taskType()))

	changed := taskType()
	changed.Fields = append(changed.Fields, &Field{Fieldname: "extra", Type: TypeInt})
	assert.ErrorIs(t, r.Register(changed), ErrDuplicateDefinition)
}

func TestRegisterAfterFreeze(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(taskType()))
	r.Freeze()

	assert.True(t, r.Frozen())
	other := taskType()
	other.Name = "Note"
	assert.ErrorIs(t, r.Register(other), ErrRegistryFrozen)
}

func TestNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		dt := taskType()
		dt.Name = name
		require.NoError(t, r.Register(dt))
	}
	assert.Equal(t, []string{"Alpha", "Mid", "Zeta"}, r.Names())
}

func TestRegisterInvalidDefinition(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name   string
		mutate func(*DocType)
	}{
		{"empty name", func(dt *DocType) { dt.Name = "" }},
		{"reserved fieldname", func(dt *DocType) {
			dt.Fields = append(dt.Fields, &Field{Fieldname: "docstatus", Type: TypeInt})
		}},
		{"duplicate fieldname", func(dt *DocType) {
			dt.Fields = append(dt.Fields, &Field{Fieldname: "subject", Type: TypeText})
		}},
		{"select without options", func(dt *DocType) {
			dt.Fields = append(dt.Fields, &Field{Fieldname: "state", Type: TypeSelect})
		}},
		{"link without target", func(dt *DocType) {
			dt.Fields = append(dt.Fields, &Field{Fieldname: "parent", Type: TypeLink})
		}},
		{"naming rule on unknown field", func(dt *DocType) { dt.NamingRule = "field:missing" }},
		{"unknown sort field", func(dt *DocType) { dt.SortField = "missing" }},
		{"unknown search field", func(dt *DocType) { dt.SearchFields = []string{"missing"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt := taskType()
			tt.mutate(dt)
			assert.Error(t, r.Register(dt))
		})
	}
}
