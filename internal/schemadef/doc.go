// Package schemadef loads document-type configuration from CUE files.
//
// Document types are authored as CUE under a doctype: root:
//
//	doctype: invoice: {
//		label: "Invoice"
//		fields: {
//			invoice_number: {type: "string", critical: true}
//			total:          {type: "number", critical: true}
//			notes:          {type: "string"}
//		}
//	}
//
// One authored source yields both tables the agreement engine consumes: the
// schema map (field universe per type) and the critical-field table (fields
// flagged critical: true). The engine itself stays agnostic to how schemas
// are authored; it only sees the compiled maps.
package schemadef
