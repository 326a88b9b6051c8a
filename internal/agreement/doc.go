// Package agreement implements the observed field-level agreement engine.
//
// Given a document's originally-extracted field values and the values a human
// reviewer ultimately accepted or corrected, the engine classifies every
// schema-declared field into a closed 5-way outcome taxonomy and aggregates
// outcomes into accuracy rates across a corpus.
//
// Evaluation Flow:
// 1. Eligibility gate - only reviewed documents are scored
// 2. Reclassification gate - documents whose reviewer-assigned type differs
//    from the automatic classification are excluded entirely
// 3. Field universe resolution - schema-declared fields, falling back to
//    observed keys when no schema is registered for the type
// 4. Per-field classification via canonical value comparison (fieldval)
// 5. Corpus aggregation - element-wise count sums, rates recomputed from
//    summed counts
//
// CRITICAL PATTERNS:
//
// Every evaluated field receives exactly one outcome; the five counts
// partition the evaluated fields. Rates with a zero denominator are nil,
// never zero - division by zero must not silently report 0%.
//
// The engine is pure: no I/O, no logging, no retained state between calls.
// Inputs are only read, outputs are freshly allocated, so concurrent callers
// need no locking. Field iteration is sorted for deterministic results.
package agreement
