package agreement

// CorpusResult is the corpus-wide aggregate over all eligible, non-excluded
// documents.
//
// Invariant: ReviewedDocs + ExcludedReclassified + silently-skipped
// unreviewed documents = number of documents given to EvaluateCorpus, and
// Counts.Total() == TotalEvaluatedFields.
type CorpusResult struct {
	Counts               Counts `json:"counts"`
	Rates                Rates  `json:"rates"`
	CriticalCounts       Counts `json:"critical_counts"`
	CriticalRates        Rates  `json:"critical_rates"`
	ReviewedDocs         int    `json:"reviewed_doc_count"`
	ExcludedReclassified int    `json:"excluded_reclassified_count"`
	TotalEvaluatedFields int64  `json:"total_evaluated_fields"`
}

// EvaluateCorpus folds the document evaluator over a snapshot of documents.
// Single pass, no retained state. Rates are recomputed from the summed
// counts, never averaged across per-document rates.
func (e *Evaluator) EvaluateCorpus(docs []*Document) *CorpusResult {
	agg := &CorpusResult{}

	for _, doc := range docs {
		result, excluded := e.EvaluateDocument(doc)
		if excluded == ExcludedReclassified {
			agg.ExcludedReclassified++
			continue
		}
		if result == nil {
			continue
		}

		agg.ReviewedDocs++
		agg.TotalEvaluatedFields += result.EvaluatedFields
		agg.Counts.Merge(result.Counts)
		agg.CriticalCounts.Merge(result.CriticalCounts)
	}

	agg.Rates = RatesFrom(agg.Counts)
	agg.CriticalRates = RatesFrom(agg.CriticalCounts)
	return agg
}
