package modules

import "github.com/docflow-io/docflow/internal/doctype"

func buyingTypes() []*doctype.DocType {
	return []*doctype.DocType{supplierType()}
}

func supplierType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "Supplier",
		Module:       "Buying",
		NamingRule:   "field:supplier_name",
		TitleField:   "supplier_name",
		SearchFields: []string{"supplier_name", "mobile_no", "email_id"},
		SortField:    "supplier_name",
		SortOrder:    doctype.SortAsc,
		Fields: []*doctype.Field{
			{Fieldname: "supplier_name", Type: doctype.TypeText, Label: "Supplier Name", Required: true},
			{Fieldname: "supplier_type", Type: doctype.TypeSelect, Label: "Supplier Type",
				Options: []string{"Individual", "Company"}, Default: "Company"},
			{Fieldname: "supplier_group", Type: doctype.TypeText, Label: "Supplier Group"},
			{Fieldname: "mobile_no", Type: doctype.TypeText, Label: "Mobile", MaxLength: 20},
			{Fieldname: "email_id", Type: doctype.TypeText, Label: "Email"},
			{Fieldname: "phone", Type: doctype.TypeText, Label: "Phone", MaxLength: 20},
			{Fieldname: "primary_address", Type: doctype.TypeLongText, Label: "Address"},
			{Fieldname: "city", Type: doctype.TypeText, Label: "City", MaxLength: 100},
			{Fieldname: "country", Type: doctype.TypeText, Label: "Country", MaxLength: 100},
			{Fieldname: "tax_id", Type: doctype.TypeText, Label: "Tax ID", MaxLength: 50},
			{Fieldname: "default_currency", Type: doctype.TypeText, Label: "Currency", MaxLength: 10, Default: "USD"},
			{Fieldname: "disabled", Type: doctype.TypeCheck, Label: "Disabled"},
		},
		Permissions: []doctype.RolePermission{
			adminGrant,
			{Role: "Purchase Manager", Actions: crudActions()},
			{Role: "Purchase User", Actions: []doctype.Action{
				doctype.ActionRead, doctype.ActionWrite, doctype.ActionCreate}},
			{Role: "Accounts User", Actions: readOnlyActions()},
		},
	}
}
