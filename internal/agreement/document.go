package agreement

import (
	"encoding/json"

	"github.com/snowsecure/fieldwise/internal/fieldval"
)

// StatusReviewed is the document status set once a human has signed off on
// the extraction. Documents in any other status with no edits carry no
// reviewer signal and are not scored.
const StatusReviewed = "reviewed"

// FieldMap maps field names to extracted or corrected values.
type FieldMap map[string]fieldval.Value

// UnmarshalJSON implements json.Unmarshaler, decoding values into the
// fieldval tagged representation.
func (m *FieldMap) UnmarshalJSON(data []byte) error {
	var obj fieldval.Object
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*m = FieldMap(obj)
	return nil
}

// MarshalJSON implements json.Marshaler with sorted keys.
func (m FieldMap) MarshalJSON() ([]byte, error) {
	return fieldval.Object(m).MarshalJSON()
}

// Document is the engine's read-only view of an intake document. The engine
// never mutates a Document.
type Document struct {
	ID               string            `json:"id"`
	Status           string            `json:"status"`
	EditedFields     FieldMap          `json:"edited_fields,omitempty"`
	CategoryOverride *CategoryOverride `json:"category_override,omitempty"`
	Classification   Classification    `json:"classification"`
	ExtractedData    FieldMap          `json:"extracted_data,omitempty"`
}

// CategoryOverride is a reviewer-assigned document type that replaces the
// automatic classification. IsCustom marks a free-form type the reviewer
// typed in rather than picked from the registered types.
type CategoryOverride struct {
	ID       string `json:"id"`
	IsCustom bool   `json:"is_custom,omitempty"`
}

// Classification holds the automatically-assigned document type.
type Classification struct {
	Category string `json:"category"`
}

// Reviewed reports whether the document is eligible for scoring: its status
// is reviewed, or a reviewer edited at least one field.
func (d *Document) Reviewed() bool {
	return d.Status == StatusReviewed || len(d.EditedFields) > 0
}

// Reclassified reports whether the reviewer assigned a type that differs
// from the automatic classification. Such documents were extracted against
// the wrong schema, so field-level comparison is meaningless and they are
// excluded from scoring entirely.
func (d *Document) Reclassified() bool {
	o := d.CategoryOverride
	return o != nil && o.ID != "" && o.ID != d.Classification.Category
}

// EffectiveType resolves the document type to score against: the override's
// id when present and not a free-form custom type, otherwise the automatic
// classification.
func (d *Document) EffectiveType() string {
	if o := d.CategoryOverride; o != nil && o.ID != "" && !o.IsCustom {
		return o.ID
	}
	return d.Classification.Category
}

// MergedData returns the reviewer-accepted field map and the as-extracted
// field map for a document. The final map layers EditedFields over the
// extraction; the original map is the extraction untouched.
func MergedData(doc *Document) (final, original FieldMap) {
	original = doc.ExtractedData
	final = make(FieldMap, len(original)+len(doc.EditedFields))
	for k, v := range original {
		final[k] = v
	}
	for k, v := range doc.EditedFields {
		final[k] = v
	}
	return final, original
}

// SchemaMap maps document-type ids to their schema descriptors. Used to
// discover fields the extractor missed entirely, which would be invisible if
// only observed data keys were iterated.
type SchemaMap map[string]TypeSchema

// TypeSchema describes one document type.
type TypeSchema struct {
	Label      string               `json:"label,omitempty"`
	Properties map[string]FieldSpec `json:"properties"`
}

// FieldSpec describes one schema-declared field.
type FieldSpec struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
}

// CriticalSet is a set of high-stakes field names.
type CriticalSet map[string]struct{}

// CriticalTable maps document-type ids to their critical-field sets.
// Missing entries behave as an empty set.
type CriticalTable map[string]CriticalSet

// Contains reports whether field is critical for docType.
func (t CriticalTable) Contains(docType, field string) bool {
	_, ok := t[docType][field]
	return ok
}
