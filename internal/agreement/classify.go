package agreement

import (
	"github.com/snowsecure/fieldwise/internal/fieldval"
)

// MetadataFieldPrefix marks reasoning/source annotation fields emitted by
// the extraction pipeline (e.g. _reasoning, _source). These are not
// user-facing data fields and are never scored.
const MetadataFieldPrefix = "_"

// Classify assigns one outcome to a field given its originally-extracted
// value and the reviewer-accepted value. Total and pure: any value pair,
// including nil for missing keys, maps onto exactly one outcome.
//
// Rules, evaluated in order:
//  1. Final is the not-in-document sentinel: hallucination if anything was
//     extracted, correct_absent otherwise.
//  2. Nothing was extracted but the reviewer supplied a value: miss.
//  3. The values agree under canonical normalization: correct.
//  4. Otherwise: wrong_value.
func Classify(original, final fieldval.Value) Outcome {
	if fieldval.IsNotInDocument(final) {
		if !fieldval.IsEmpty(original) {
			return OutcomeHallucination
		}
		return OutcomeCorrectAbsent
	}
	if fieldval.IsEmpty(original) && !fieldval.IsEmpty(final) {
		return OutcomeMiss
	}
	if fieldval.Equal(original, final) {
		return OutcomeCorrect
	}
	return OutcomeWrongValue
}
