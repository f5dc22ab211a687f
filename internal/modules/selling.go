package modules

import "github.com/docflow-io/docflow/internal/doctype"

func sellingTypes() []*doctype.DocType {
	return []*doctype.DocType{salesOrderType(), salesInvoiceType()}
}

func salesOrderType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "SalesOrder",
		Module:       "Selling",
		NamingRule:   "series:SO",
		TitleField:   "customer_name",
		SearchFields: []string{"customer", "customer_name", "po_no"},
		SortField:    "transaction_date",
		SortOrder:    doctype.SortDesc,
		Submittable:  true,
		Fields: []*doctype.Field{
			{Fieldname: "customer", Type: doctype.TypeLink, Label: "Customer", Required: true, Target: "Customer"},
			{Fieldname: "customer_name", Type: doctype.TypeText, Label: "Customer Name"},
			{Fieldname: "order_type", Type: doctype.TypeSelect, Label: "Order Type",
				Options: []string{"Sales", "Maintenance", "Shopping Cart"}, Default: "Sales"},
			{Fieldname: "transaction_date", Type: doctype.TypeDate, Label: "Date", Required: true},
			{Fieldname: "delivery_date", Type: doctype.TypeDate, Label: "Delivery Date"},
			{Fieldname: "po_no", Type: doctype.TypeText, Label: "Customer PO"},
			{Fieldname: "po_date", Type: doctype.TypeDate, Label: "Customer PO Date"},
			{Fieldname: "currency", Type: doctype.TypeText, Label: "Currency", MaxLength: 10, Default: "USD"},
			{Fieldname: "conversion_rate", Type: doctype.TypeDecimal, Label: "Exchange Rate", Default: 1.0},
			{Fieldname: "total_qty", Type: doctype.TypeDecimal, Label: "Total Quantity", ReadOnly: true},
			{Fieldname: "total", Type: doctype.TypeDecimal, Label: "Total", Precision: 2, ReadOnly: true},
			{Fieldname: "grand_total", Type: doctype.TypeDecimal, Label: "Grand Total", Precision: 2, ReadOnly: true},
			{Fieldname: "status", Type: doctype.TypeSelect, Label: "Status",
				Options: []string{"Draft", "To Deliver and Bill", "To Bill", "To Deliver", "Completed", "Cancelled", "Closed"},
				Default: "Draft"},
			{Fieldname: "contact_person", Type: doctype.TypeText, Label: "Contact"},
			{Fieldname: "contact_email", Type: doctype.TypeText, Label: "Contact Email"},
			{Fieldname: "terms", Type: doctype.TypeLongText, Label: "Terms and Conditions"},
		},
		Permissions: []doctype.RolePermission{
			adminGrant,
			{Role: "Sales Manager", Actions: lifecycleActions()},
			{Role: "Sales User", Actions: append(crudActions(), doctype.ActionSubmit)},
			{Role: "Accounts User", Actions: readOnlyActions()},
		},
	}
}

func salesInvoiceType() *doctype.DocType {
	return &doctype.DocType{
		Name:         "SalesInvoice",
		Module:       "Selling",
		NamingRule:   "series:SI",
		TitleField:   "customer_name",
		SearchFields: []string{"customer", "customer_name", "po_no"},
		SortField:    "posting_date",
		SortOrder:    doctype.SortDesc,
		Submittable:  true,
		Fields: []*doctype.Field{
			{Fieldname: "customer", Type: doctype.TypeLink, Label: "Customer", Required: true, Target: "Customer"},
			{Fieldname: "customer_name", Type: doctype.TypeText, Label: "Customer Name", ReadOnly: true},
			{Fieldname: "posting_date", Type: doctype.TypeDate, Label: "Posting Date", Required: true},
			{Fieldname: "due_date", Type: doctype.TypeDate, Label: "Due Date"},
			{Fieldname: "sales_order", Type: doctype.TypeLink, Label: "Sales Order", Target: "SalesOrder"},
			{Fieldname: "po_no", Type: doctype.TypeText, Label: "Customer PO"},
			{Fieldname: "currency", Type: doctype.TypeText, Label: "Currency", MaxLength: 10, Default: "USD"},
			{Fieldname: "total_qty", Type: doctype.TypeDecimal, Label: "Total Quantity", ReadOnly: true},
			{Fieldname: "total_taxes_and_charges", Type: doctype.TypeDecimal, Label: "Taxes and Charges", Precision: 2, ReadOnly: true},
			{Fieldname: "grand_total", Type: doctype.TypeDecimal, Label: "Grand Total", Precision: 2, ReadOnly: true},
			{Fieldname: "outstanding_amount", Type: doctype.TypeDecimal, Label: "Outstanding", Precision: 2, ReadOnly: true},
			{Fieldname: "is_return", Type: doctype.TypeCheck, Label: "Is Return"},
			{Fieldname: "remarks", Type: doctype.TypeLongText, Label: "Remarks"},
		},
		Permissions: []doctype.RolePermission{
			adminGrant,
			{Role: "Accounts Manager", Actions: lifecycleActions()},
			{Role: "Accounts User", Actions: append(crudActions(), doctype.ActionSubmit)},
			{Role: "Sales User", Actions: readOnlyActions()},
		},
	}
}
