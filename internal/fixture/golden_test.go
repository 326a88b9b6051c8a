package fixture

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowsecure/fieldwise/internal/agreement"
)

// goldenEvaluator mirrors the doctype config the corpus fixtures assume.
func goldenEvaluator() *agreement.Evaluator {
	return &agreement.Evaluator{
		Schemas: agreement.SchemaMap{
			"invoice": {
				Label: "Invoice",
				Properties: map[string]agreement.FieldSpec{
					"vendor":         {Type: "string"},
					"invoice_number": {Type: "string"},
					"total":          {Type: "number"},
					"due_date":       {Type: "date"},
					"notes":          {Type: "string"},
				},
			},
			"receipt": {
				Label: "Receipt",
				Properties: map[string]agreement.FieldSpec{
					"merchant": {Type: "string"},
					"amount":   {Type: "number"},
				},
			},
		},
		Critical: agreement.CriticalTable{
			"invoice": {"vendor": {}, "total": {}},
			"receipt": {"merchant": {}},
		},
	}
}

func TestMixedReviewCorpusGolden(t *testing.T) {
	corpus, err := Load(filepath.Join("testdata", "corpus", "mixed_review.yaml"))
	require.NoError(t, err)

	result := goldenEvaluator().EvaluateCorpus(corpus.AgreementDocuments())

	require.NotNil(t, corpus.Expect)
	assert.Equal(t, corpus.Expect.Reviewed, result.ReviewedDocs)
	assert.Equal(t, corpus.Expect.Reclassified, result.ExcludedReclassified)
	assert.Equal(t, result.Counts.Total(), result.TotalEvaluatedFields)

	AssertGolden(t, corpus.Name, result)
}
