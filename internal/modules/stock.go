package modules

import "github.com/docflow-io/docflow/internal/doctype"

func stockTypes() []*doctype.DocType {
	return []*doctype.DocType{warehouseType()}
}

func warehouseType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "Warehouse",
		Module:       "Stock",
		NamingRule:   "field:warehouse_name",
		TitleField:   "warehouse_name",
		SearchFields: []string{"warehouse_name", "city"},
		SortField:    "warehouse_name",
		SortOrder:    doctype.SortAsc,
		Fields: []*doctype.Field{
			{Fieldname: "warehouse_name", Type: doctype.TypeText, Label: "Warehouse Name", Required: true},
			{Fieldname: "warehouse_type", Type: doctype.TypeSelect, Label: "Warehouse Type",
				Options: []string{"Transit", "Receiving", "Work In Progress", "Finished Goods", "Retail", "Sample"}},
			{Fieldname: "parent_warehouse", Type: doctype.TypeLink, Label: "Parent Warehouse", Target: "Warehouse"},
			{Fieldname: "is_group", Type: doctype.TypeCheck, Label: "Is Group"},
			{Fieldname: "address_line_1", Type: doctype.TypeText, Label: "Address Line 1"},
			{Fieldname: "city", Type: doctype.TypeText, Label: "City", MaxLength: 100},
			{Fieldname: "state", Type: doctype.TypeText, Label: "State", MaxLength: 100},
			{Fieldname: "country", Type: doctype.TypeText, Label: "Country", MaxLength: 100},
			{Fieldname: "phone_no", Type: doctype.TypeText, Label: "Phone", MaxLength: 20},
			{Fieldname: "email_id", Type: doctype.TypeText, Label: "Email"},
			{Fieldname: "disabled", Type: doctype.TypeCheck, Label: "Disabled"},
		},
		Permissions: []doctype.RolePermission{
			adminGrant,
			{Role: "Stock Manager", Actions: crudActions()},
			{Role: "Stock User", Actions: []doctype.Action{
				doctype.ActionRead, doctype.ActionWrite, doctype.ActionCreate}},
		},
	}
}
