package modules

import "github.com/docflow-io/docflow/internal/doctype"

func accountsTypes() []*doctype.DocType {
	return []*doctype.DocType{customerType(), itemType(), accountType()}
}

func customerType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "Customer",
		Module:       "Accounts",
		NamingRule:   "field:customer_name",
		TitleField:   "customer_name",
		SearchFields: []string{"customer_name", "mobile_no", "email_id"},
		SortField:    "customer_name",
		SortOrder:    doctype.SortAsc,
		Fields: []*doctype.Field{
			{Fieldname: "customer_name", Type: doctype.TypeText, Label: "Customer Name", Required: true, MaxLength: 100},
			{Fieldname: "customer_type", Type: doctype.TypeSelect, Label: "Customer Type", Required: true,
				Options: []string{"Individual", "Company"}, Default: "Individual"},
			{Fieldname: "customer_group", Type: doctype.TypeText, Label: "Customer Group"},
			{Fieldname: "territory", Type: doctype.TypeText, Label: "Territory"},
			{Fieldname: "mobile_no", Type: doctype.TypeText, Label: "Mobile", MaxLength: 20},
			{Fieldname: "email_id", Type: doctype.TypeText, Label: "Email"},
			{Fieldname: "phone", Type: doctype.TypeText, Label: "Phone", MaxLength: 20},
			{Fieldname: "primary_address", Type: doctype.TypeLongText, Label: "Address"},
			{Fieldname: "city", Type: doctype.TypeText, Label: "City", MaxLength: 100},
			{Fieldname: "country", Type: doctype.TypeText, Label: "Country", MaxLength: 100},
			{Fieldname: "tax_id", Type: doctype.TypeText, Label: "Tax ID", MaxLength: 50},
			{Fieldname: "default_currency", Type: doctype.TypeText, Label: "Currency", MaxLength: 10, Default: "USD"},
			{Fieldname: "credit_limit", Type: doctype.TypeDecimal, Label: "Credit Limit", Default: 0.0},
			{Fieldname: "disabled", Type: doctype.TypeCheck, Label: "Disabled"},
			{Fieldname: "is_frozen", Type: doctype.TypeCheck, Label: "Frozen"},
		},
		Permissions: []doctype.RolePermission{
			adminGrant,
			{Role: "Sales User", Actions: crudActions()},
			{Role: "Sales Manager", Actions: crudActions()},
			{Role: "Accounts User", Actions: []doctype.Action{
				doctype.ActionRead, doctype.ActionWrite, doctype.ActionCreate}},
		},
	}
}

func itemType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "Item",
		Module:       "Accounts",
		NamingRule:   "field:item_code",
		TitleField:   "item_name",
		SearchFields: []string{"item_code", "item_name", "description"},
		SortField:    "item_name",
		SortOrder:    doctype.SortAsc,
		Fields: []*doctype.Field{
			{Fieldname: "item_code", Type: doctype.TypeText, Label: "Item Code", Required: true},
			{Fieldname: "item_name", Type: doctype.TypeText, Label: "Item Name", Required: true},
			{Fieldname: "item_group", Type: doctype.TypeText, Label: "Item Group"},
			{Fieldname: "description", Type: doctype.TypeLongText, Label: "Description"},
			{Fieldname: "brand", Type: doctype.TypeText, Label: "Brand"},
			{Fieldname: "stock_uom", Type: doctype.TypeText, Label: "Unit of Measure", Default: "Nos"},
			{Fieldname: "standard_rate", Type: doctype.TypeDecimal, Label: "Standard Rate", Precision: 2, Default: 0.0},
			{Fieldname: "valuation_method", Type: doctype.TypeSelect, Label: "Valuation Method",
				Options: []string{"FIFO", "LIFO", "Moving Average"}, Default: "FIFO"},
			{Fieldname: "is_stock_item", Type: doctype.TypeCheck, Label: "Maintain Stock", Default: true},
			{Fieldname: "disabled", Type: doctype.TypeCheck, Label: "Disabled"},
		},
		Permissions: []doctype.RolePermission{
			adminGrant,
			{Role: "Stock User", Actions: crudActions()},
			{Role: "Sales User", Actions: readOnlyActions()},
			{Role: "Purchase User", Actions: readOnlyActions()},
		},
	}
}

func accountType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "Account",
		Module:       "Accounts",
		NamingRule:   "field:account_name",
		TitleField:   "account_name",
		SearchFields: []string{"account_name", "account_number"},
		SortField:    "account_name",
		SortOrder:    doctype.SortAsc,
		Fields: []*doctype.Field{
			{Fieldname: "account_name", Type: doctype.TypeText, Label: "Account Name", Required: true},
			{Fieldname: "account_number", Type: doctype.TypeText, Label: "Account Number", MaxLength: 20},
			{Fieldname: "parent_account", Type: doctype.TypeLink, Label: "Parent Account", Target: "Account"},
			{Fieldname: "account_type", Type: doctype.TypeSelect, Label: "Account Type",
				Options: []string{"Asset", "Liability", "Income", "Expense", "Equity"}},
			{Fieldname: "is_group", Type: doctype.TypeCheck, Label: "Is Group"},
			{Fieldname: "account_currency", Type: doctype.TypeText, Label: "Currency", MaxLength: 10, Default: "USD"},
			{Fieldname: "opening_balance", Type: doctype.TypeDecimal, Label: "Opening Balance", Precision: 2, Default: 0.0},
			{Fieldname: "disabled", Type: doctype.TypeCheck, Label: "Disabled"},
		},
		Permissions: []doctype.RolePermission{
			adminGrant,
			{Role: "Accounts Manager", Actions: crudActions()},
			{Role: "Accounts User", Actions: []doctype.Action{
				doctype.ActionRead, doctype.ActionWrite, doctype.ActionCreate}},
		},
	}
}
