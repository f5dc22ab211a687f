package modules

import "github.com/docflow-io/docflow/internal/doctype"

func projectsTypes() []*doctype.DocType {
	return []*doctype.DocType{projectType()}
}

func projectType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "Project",
		Module:       "Projects",
		NamingRule:   "field:project_name",
		TitleField:   "project_name",
		SearchFields: []string{"project_name", "customer_name"},
		SortField:    "expected_start_date",
		SortOrder:    doctype.SortDesc,
		Fields: []*doctype.Field{
			{Fieldname: "project_name", Type: doctype.TypeText, Label: "Project Name", Required: true},
			{Fieldname: "project_type", Type: doctype.TypeSelect, Label: "Project Type",
				Options: []string{"Internal", "External", "Other"}, Default: "External"},
			{Fieldname: "status", Type: doctype.TypeSelect, Label: "Status",
				Options: []string{"Open", "Completed", "Cancelled"}, Default: "Open"},
			{Fieldname: "priority", Type: doctype.TypeSelect, Label: "Priority",
				Options: []string{"Low", "Medium", "High", "Critical"}, Default: "Medium"},
			{Fieldname: "customer", Type: doctype.TypeLink, Label: "Customer", Target: "Customer"},
			{Fieldname: "customer_name", Type: doctype.TypeText, Label: "Customer Name", ReadOnly: true},
			{Fieldname: "sales_order", Type: doctype.TypeLink, Label: "Sales Order", Target: "SalesOrder"},
			{Fieldname: "expected_start_date", Type: doctype.TypeDate, Label: "Expected Start"},
			{Fieldname: "expected_end_date", Type: doctype.TypeDate, Label: "Expected End"},
			{Fieldname: "percent_complete", Type: doctype.TypeDecimal, Label: "% Complete", ReadOnly: true},
			{Fieldname: "estimated_costing", Type: doctype.TypeDecimal, Label: "Estimated Cost", Precision: 2},
			{Fieldname: "notes", Type: doctype.TypeLongText, Label: "Notes"},
		},
		Permissions: []doctype.RolePermission{
			adminGrant,
			{Role: "Projects Manager", Actions: crudActions()},
			{Role: "Projects User", Actions: []doctype.Action{
				doctype.ActionRead, doctype.ActionWrite, doctype.ActionCreate}},
		},
	}
}
