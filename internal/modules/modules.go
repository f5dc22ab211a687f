// Package modules ships the built-in document type definitions. Each file
// covers one business area and contributes its types through RegisterAll.
package modules

import (
	"fmt"

	"github.com/docflow-io/docflow/internal/doctype"
)

// RegisterAll registers every built-in document type and freezes the
// registry. Call once at startup before the store binds tables.
func RegisterAll(registry *doctype.Registry) error {
	groups := [][]*doctype.DocType{
		accountsTypes(),
		sellingTypes(),
		buyingTypes(),
		crmTypes(),
		hrTypes(),
		projectsTypes(),
		stockTypes(),
	}

	for _, group := range groups {
		for _, dt := range group {
			if err := registry.Register(dt); err != nil {
				return fmt.Errorf("register %s: %w", dt.Name, err)
			}
		}
	}

	registry.Freeze()
	return nil
}

// adminGrant is shared by every built-in type: System Manager can do
// everything
var adminGrant = doctype.RolePermission{
	Role:    "System Manager",
	Actions: []doctype.Action{doctype.ActionWildcard},
}

func crudActions() []doctype.Action {
	return []doctype.Action{
		doctype.ActionRead, doctype.ActionWrite,
		doctype.ActionCreate, doctype.ActionDelete,
	}
}

func lifecycleActions() []doctype.Action {
	return append(crudActions(),
		doctype.ActionSubmit, doctype.ActionCancel, doctype.ActionAmend)
}

func readOnlyActions() []doctype.Action {
	return []doctype.Action{doctype.ActionRead}
}
