package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/snowsecure/fieldwise/internal/agreement"
)

// WriteDocument inserts or replaces one document. The intake application
// owns the table in production; this writer exists for fixture databases and
// local snapshots.
func (s *Store) WriteDocument(ctx context.Context, doc *agreement.Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("document id is required")
	}

	overrideJSON, err := marshalNullable(doc.CategoryOverride)
	if err != nil {
		return fmt.Errorf("document %s: encode category_override: %w", doc.ID, err)
	}
	editedJSON, err := marshalNullableMap(doc.EditedFields)
	if err != nil {
		return fmt.Errorf("document %s: encode edited_fields: %w", doc.ID, err)
	}
	dataJSON, err := marshalNullableMap(doc.ExtractedData)
	if err != nil {
		return fmt.Errorf("document %s: encode extracted_data: %w", doc.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents (id, status, category, category_override, edited_fields, extracted_data)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Status, doc.Classification.Category, overrideJSON, editedJSON, dataJSON)
	if err != nil {
		return fmt.Errorf("insert document %s: %w", doc.ID, err)
	}

	return nil
}

// marshalNullable returns nil for a nil override so the column stays NULL.
func marshalNullable(override *agreement.CategoryOverride) (any, error) {
	if override == nil {
		return nil, nil
	}
	data, err := json.Marshal(override)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// marshalNullableMap returns nil for an empty field map so the column stays
// NULL.
func marshalNullableMap(m agreement.FieldMap) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
