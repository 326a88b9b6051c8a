package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/snowsecure/fieldwise/internal/agreement"
)

// ReadDocuments returns every document in the snapshot, ordered by id for
// deterministic aggregation.
func (s *Store) ReadDocuments(ctx context.Context) ([]*agreement.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, category, category_override, edited_fields, extracted_data
		FROM documents
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := []*agreement.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

// ReadDocument returns one document by id, or sql.ErrNoRows if absent.
func (s *Store) ReadDocument(ctx context.Context, id string) (*agreement.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, status, category, category_override, edited_fields, extracted_data
		FROM documents
		WHERE id = ?
	`, id)
	return scanDocument(row)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument decodes one documents row into an agreement.Document.
func scanDocument(row rowScanner) (*agreement.Document, error) {
	var (
		doc          agreement.Document
		overrideJSON sql.NullString
		editedJSON   sql.NullString
		dataJSON     sql.NullString
	)

	if err := row.Scan(&doc.ID, &doc.Status, &doc.Classification.Category, &overrideJSON, &editedJSON, &dataJSON); err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}

	if overrideJSON.Valid && overrideJSON.String != "" {
		var override agreement.CategoryOverride
		if err := json.Unmarshal([]byte(overrideJSON.String), &override); err != nil {
			return nil, fmt.Errorf("document %s: decode category_override: %w", doc.ID, err)
		}
		doc.CategoryOverride = &override
	}

	if editedJSON.Valid && editedJSON.String != "" {
		if err := json.Unmarshal([]byte(editedJSON.String), &doc.EditedFields); err != nil {
			return nil, fmt.Errorf("document %s: decode edited_fields: %w", doc.ID, err)
		}
	}

	if dataJSON.Valid && dataJSON.String != "" {
		if err := json.Unmarshal([]byte(dataJSON.String), &doc.ExtractedData); err != nil {
			return nil, fmt.Errorf("document %s: decode extracted_data: %w", doc.ID, err)
		}
	}

	return &doc, nil
}
