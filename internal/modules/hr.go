package modules

import "github.com/docflow-io/docflow/internal/doctype"

func hrTypes() []*doctype.DocType {
	return []*doctype.DocType{employeeType()}
}

func employeeType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "Employee",
		Module:       "HR",
		NamingRule:   "series:EMP",
		TitleField:   "employee_name",
		SearchFields: []string{"employee_name", "department", "designation"},
		SortField:    "employee_name",
		SortOrder:    doctype.SortAsc,
		Fields: []*doctype.Field{
			{Fieldname: "employee_name", Type: doctype.TypeText, Label: "Full Name", Required: true},
			{Fieldname: "first_name", Type: doctype.TypeText, Label: "First Name", Required: true},
			{Fieldname: "last_name", Type: doctype.TypeText, Label: "Last Name"},
			{Fieldname: "gender", Type: doctype.TypeSelect, Label: "Gender",
				Options: []string{"Male", "Female", "Other"}},
			{Fieldname: "date_of_birth", Type: doctype.TypeDate, Label: "Date of Birth"},
			{Fieldname: "date_of_joining", Type: doctype.TypeDate, Label: "Date of Joining"},
			{Fieldname: "department", Type: doctype.TypeText, Label: "Department"},
			{Fieldname: "designation", Type: doctype.TypeText, Label: "Designation"},
			{Fieldname: "reports_to", Type: doctype.TypeLink, Label: "Reports To", Target: "Employee"},
			{Fieldname: "status", Type: doctype.TypeSelect, Label: "Status",
				Options: []string{"Active", "Inactive", "Suspended", "Left"}, Default: "Active"},
			{Fieldname: "cell_number", Type: doctype.TypeText, Label: "Mobile", MaxLength: 20},
			{Fieldname: "personal_email", Type: doctype.TypeText, Label: "Personal Email"},
			{Fieldname: "company_email", Type: doctype.TypeText, Label: "Company Email"},
			{Fieldname: "current_address", Type: doctype.TypeLongText, Label: "Current Address"},
			{Fieldname: "salary", Type: doctype.TypeDecimal, Label: "Salary", Precision: 2, Hidden: true},
		},
		Permissions: []doctype.RolePermission{
			adminGrant,
			{Role: "HR Manager", Actions: crudActions()},
			{Role: "HR User", Actions: []doctype.Action{
				doctype.ActionRead, doctype.ActionWrite, doctype.ActionCreate}},
		},
	}
}
