package snapshot

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowsecure/fieldwise/internal/agreement"
	"github.com/snowsecure/fieldwise/internal/fieldval"
)

// createTestStore creates a fresh on-disk store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestDocument creates a reviewed document with a small field set.
func createTestDocument(id string) *agreement.Document {
	return &agreement.Document{
		ID:     id,
		Status: agreement.StatusReviewed,
		ExtractedData: agreement.FieldMap{
			"vendor": fieldval.String("Acme Corp"),
			"total":  fieldval.Number(125.5),
		},
		EditedFields: agreement.FieldMap{
			"total": fieldval.Number(126),
		},
		Classification: agreement.Classification{Category: "invoice"},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	doc := createTestDocument("doc-1")
	doc.CategoryOverride = &agreement.CategoryOverride{ID: "invoice"}
	require.NoError(t, s.WriteDocument(ctx, doc))

	loaded, err := s.ReadDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestReadDocumentsOrdering(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"doc-c", "doc-a", "doc-b"} {
		require.NoError(t, s.WriteDocument(ctx, createTestDocument(id)))
	}

	docs, err := s.ReadDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "doc-a", docs[0].ID)
	assert.Equal(t, "doc-b", docs[1].ID)
	assert.Equal(t, "doc-c", docs[2].ID)
}

func TestReadDocumentsEmpty(t *testing.T) {
	s := createTestStore(t)

	docs, err := s.ReadDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestReadDocumentMissing(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadDocument(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestWriteDocumentRejectsEmptyID(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteDocument(context.Background(), &agreement.Document{})
	assert.Error(t, err)
}

func TestNullColumnsDecodeAsEmpty(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	doc := &agreement.Document{
		ID:             "doc-bare",
		Status:         "pending",
		Classification: agreement.Classification{Category: "invoice"},
	}
	require.NoError(t, s.WriteDocument(ctx, doc))

	loaded, err := s.ReadDocument(ctx, "doc-bare")
	require.NoError(t, err)
	assert.Nil(t, loaded.CategoryOverride)
	assert.Nil(t, loaded.EditedFields)
	assert.Nil(t, loaded.ExtractedData)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.WriteDocument(context.Background(), createTestDocument("doc-1")))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	docs, err := s2.ReadDocuments(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
