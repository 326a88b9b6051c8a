package agreement

import (
	"github.com/snowsecure/fieldwise/internal/fieldval"
)

// testSchemas registers a single "invoice" type with five declared fields.
func testSchemas() SchemaMap {
	return SchemaMap{
		"invoice": {
			Label: "Invoice",
			Properties: map[string]FieldSpec{
				"vendor":         {Type: "string"},
				"invoice_number": {Type: "string"},
				"total":          {Type: "number"},
				"due_date":       {Type: "string"},
				"notes":          {Type: "string"},
			},
		},
	}
}

// testCritical marks vendor and total as high-stakes for invoices.
func testCritical() CriticalTable {
	return CriticalTable{
		"invoice": {
			"vendor": {},
			"total":  {},
		},
	}
}

func testEvaluator() *Evaluator {
	return &Evaluator{Schemas: testSchemas(), Critical: testCritical()}
}

// reviewedDoc creates a reviewed invoice with the given extraction and edits.
func reviewedDoc(id string, extracted, edited FieldMap) *Document {
	return &Document{
		ID:             id,
		Status:         StatusReviewed,
		ExtractedData:  extracted,
		EditedFields:   edited,
		Classification: Classification{Category: "invoice"},
	}
}

func str(s string) fieldval.Value  { return fieldval.String(s) }
func num(f float64) fieldval.Value { return fieldval.Number(f) }
