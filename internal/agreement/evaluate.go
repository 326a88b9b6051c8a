package agreement

import (
	"sort"
	"strings"

	"github.com/snowsecure/fieldwise/internal/fieldval"
)

// Exclusion states why a document produced no result. Not errors: callers
// must tally the reasons separately.
type Exclusion int

const (
	// ExcludedNone - the document was scored.
	ExcludedNone Exclusion = iota
	// ExcludedNotReviewed - no reviewer signal exists yet; skipped silently.
	ExcludedNotReviewed
	// ExcludedReclassified - the reviewer assigned a different document type;
	// counted separately in aggregates, never scored.
	ExcludedReclassified
)

// String returns a short name for the exclusion reason.
func (e Exclusion) String() string {
	switch e {
	case ExcludedNone:
		return "none"
	case ExcludedNotReviewed:
		return "not_reviewed"
	case ExcludedReclassified:
		return "reclassified"
	default:
		return "unknown"
	}
}

// Evaluator scores documents against registered schemas and critical-field
// configuration. Both maps are read-only; a zero Evaluator is usable and
// degrades field discovery to observed keys.
type Evaluator struct {
	Schemas  SchemaMap
	Critical CriticalTable
}

// DocumentResult holds per-document counts and rates for both scopes.
type DocumentResult struct {
	DocType         string `json:"doc_type"`
	Counts          Counts `json:"counts"`
	Rates           Rates  `json:"rates"`
	CriticalCounts  Counts `json:"critical_counts"`
	CriticalRates   Rates  `json:"critical_rates"`
	EvaluatedFields int64  `json:"evaluated_field_count"`
}

// FieldOutcome is one row of a per-field breakdown: the outcome plus the
// normalized forms the classifier actually compared.
type FieldOutcome struct {
	Field    string  `json:"field"`
	Outcome  Outcome `json:"outcome"`
	Critical bool    `json:"critical,omitempty"`
	Original string  `json:"original"`
	Final    string  `json:"final"`
}

// DocumentExplanation is a DocumentResult with its per-field breakdown,
// sorted by field name.
type DocumentExplanation struct {
	DocumentResult
	Fields []FieldOutcome `json:"fields"`
}

// EvaluateDocument scores one document. Returns nil with the exclusion
// reason for documents that are not yet reviewed or were reclassified.
func (e *Evaluator) EvaluateDocument(doc *Document) (*DocumentResult, Exclusion) {
	return e.evaluate(doc, nil)
}

// ExplainDocument scores one document and additionally reports every
// evaluated field's outcome. Same gates and counts as EvaluateDocument.
func (e *Evaluator) ExplainDocument(doc *Document) (*DocumentExplanation, Exclusion) {
	var fields []FieldOutcome
	result, excluded := e.evaluate(doc, &fields)
	if result == nil {
		return nil, excluded
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &DocumentExplanation{DocumentResult: *result, Fields: fields}, ExcludedNone
}

// evaluate is the single walk shared by EvaluateDocument and
// ExplainDocument. When collect is non-nil it receives one FieldOutcome per
// evaluated field.
func (e *Evaluator) evaluate(doc *Document, collect *[]FieldOutcome) (*DocumentResult, Exclusion) {
	if doc == nil || !doc.Reviewed() {
		return nil, ExcludedNotReviewed
	}
	if doc.Reclassified() {
		return nil, ExcludedReclassified
	}

	docType := doc.EffectiveType()
	final, original := MergedData(doc)
	critical := e.Critical[docType]

	result := &DocumentResult{DocType: docType}
	for _, name := range e.fieldUniverse(docType, final) {
		if strings.HasPrefix(name, MetadataFieldPrefix) {
			continue
		}

		origVal := original[name]
		finVal, finPresent := final[name]
		// Skip fields the extractor and reviewer both ignored: no value was
		// ever set or edited, so they carry no signal and must not dilute
		// rates. A field explicitly set to an empty value is still scored.
		if !finPresent && fieldval.IsEmpty(origVal) {
			continue
		}

		outcome := Classify(origVal, finVal)
		result.Counts.Add(outcome)
		isCritical := false
		if _, ok := critical[name]; ok {
			isCritical = true
			result.CriticalCounts.Add(outcome)
		}
		if collect != nil {
			*collect = append(*collect, FieldOutcome{
				Field:    name,
				Outcome:  outcome,
				Critical: isCritical,
				Original: fieldval.Normalize(origVal),
				Final:    fieldval.Normalize(finVal),
			})
		}
	}

	result.EvaluatedFields = result.Counts.Total()
	result.Rates = RatesFrom(result.Counts)
	result.CriticalRates = RatesFrom(result.CriticalCounts)
	return result, ExcludedNone
}

// fieldUniverse returns the field names to score for a document type, in
// sorted order for deterministic iteration. Schema-declared fields when a
// schema is registered; otherwise the keys observed in the final data.
func (e *Evaluator) fieldUniverse(docType string, final FieldMap) []string {
	if schema, ok := e.Schemas[docType]; ok && len(schema.Properties) > 0 {
		names := make([]string, 0, len(schema.Properties))
		for name := range schema.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}

	names := make([]string, 0, len(final))
	for name := range final {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
