package modules

import "github.com/docflow-io/docflow/internal/doctype"

func crmTypes() []*doctype.DocType {
	return []*doctype.DocType{leadType()}
}

func leadType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "Lead",
		Module:       "CRM",
		NamingRule:   "series:LEAD",
		TitleField:   "lead_name",
		SearchFields: []string{"lead_name", "email_id", "mobile_no", "company_name"},
		SortField:    "creation",
		SortOrder:    doctype.SortDesc,
		Fields: []*doctype.Field{
			{Fieldname: "lead_name", Type: doctype.TypeText, Label: "Lead Name", Required: true},
			{Fieldname: "company_name", Type: doctype.TypeText, Label: "Company"},
			{Fieldname: "lead_type", Type: doctype.TypeSelect, Label: "Lead Type",
				Options: []string{"Client", "Channel Partner", "Consultant"}},
			{Fieldname: "status", Type: doctype.TypeSelect, Label: "Status",
				Options: []string{"Lead", "Open", "Replied", "Opportunity", "Quotation", "Lost Quotation", "Interested", "Converted", "Do Not Contact"},
				Default: "Lead"},
			{Fieldname: "source", Type: doctype.TypeSelect, Label: "Source",
				Options: []string{"Advertisement", "Campaign", "Cold Calling", "Customer's Vendor", "Exhibition", "Existing Customer", "Reference", "Walk In"}},
			{Fieldname: "email_id", Type: doctype.TypeText, Label: "Email"},
			{Fieldname: "mobile_no", Type: doctype.TypeText, Label: "Mobile", MaxLength: 20},
			{Fieldname: "phone", Type: doctype.TypeText, Label: "Phone", MaxLength: 20},
			{Fieldname: "city", Type: doctype.TypeText, Label: "City", MaxLength: 100},
			{Fieldname: "country", Type: doctype.TypeText, Label: "Country", MaxLength: 100},
			{Fieldname: "organization_lead", Type: doctype.TypeCheck, Label: "Lead is an Organization"},
			{Fieldname: "notes", Type: doctype.TypeLongText, Label: "Notes"},
		},
		Permissions: []doctype.RolePermission{
			adminGrant,
			{Role: "Sales Manager", Actions: crudActions()},
			{Role: "Sales User", Actions: []doctype.Action{
				doctype.ActionRead, doctype.ActionWrite, doctype.ActionCreate}},
		},
	}
}
