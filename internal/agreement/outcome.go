package agreement

import (
	"encoding/json"
	"fmt"
)

// Outcome classifies a single field's agreement between the originally
// extracted value and the reviewer-accepted value. Closed set: the five
// variants partition every evaluated field.
type Outcome int

const (
	// OutcomeCorrect - the extracted value agrees with the reviewer-accepted value.
	OutcomeCorrect Outcome = iota
	// OutcomeWrongValue - a value was extracted but disagrees with the reviewer.
	OutcomeWrongValue
	// OutcomeMiss - nothing was extracted for a field the document contains.
	OutcomeMiss
	// OutcomeHallucination - a value was extracted for a field the reviewer
	// marked as not present in the document.
	OutcomeHallucination
	// OutcomeCorrectAbsent - nothing was extracted and the reviewer confirmed
	// the field is absent.
	OutcomeCorrectAbsent
)

// outcomeNames are the wire names used in JSON output and reports.
var outcomeNames = map[Outcome]string{
	OutcomeCorrect:       "correct",
	OutcomeWrongValue:    "wrong_value",
	OutcomeMiss:          "miss",
	OutcomeHallucination: "hallucination",
	OutcomeCorrectAbsent: "correct_absent",
}

// String returns the outcome's wire name.
func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalJSON implements json.Marshaler.
func (o Outcome) MarshalJSON() ([]byte, error) {
	name, ok := outcomeNames[o]
	if !ok {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return json.Marshal(name)
}

// UnmarshalJSON implements json.Unmarshaler. Rejects unrecognized names so a
// stray string can never leak into aggregation.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for outcome, n := range outcomeNames {
		if n == name {
			*o = outcome
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", name)
}

// Counts tallies outcomes for one scope ("all fields" or "critical fields").
type Counts struct {
	Correct       int64 `json:"correct"`
	WrongValue    int64 `json:"wrong_value"`
	Miss          int64 `json:"miss"`
	Hallucination int64 `json:"hallucination"`
	CorrectAbsent int64 `json:"correct_absent"`
}

// Add increments the tally for one outcome.
func (c *Counts) Add(o Outcome) {
	switch o {
	case OutcomeCorrect:
		c.Correct++
	case OutcomeWrongValue:
		c.WrongValue++
	case OutcomeMiss:
		c.Miss++
	case OutcomeHallucination:
		c.Hallucination++
	case OutcomeCorrectAbsent:
		c.CorrectAbsent++
	}
}

// Merge adds other's tallies element-wise.
func (c *Counts) Merge(other Counts) {
	c.Correct += other.Correct
	c.WrongValue += other.WrongValue
	c.Miss += other.Miss
	c.Hallucination += other.Hallucination
	c.CorrectAbsent += other.CorrectAbsent
}

// Total returns the number of evaluated fields the counts cover.
func (c Counts) Total() int64 {
	return c.Correct + c.WrongValue + c.Miss + c.Hallucination + c.CorrectAbsent
}

// Rates are the ratios derived from Counts. A rate is nil, not zero, when
// its denominator is zero: "no comparable fields" and "0% accuracy" are
// different findings and must not be conflated.
//
// PresentAccuracy, MissRate, and WrongRate share the denominator
// correct+wrong_value+miss (fields the document in fact contains).
// HallucinationRate uses hallucination+correct_absent (fields the reviewer
// ruled absent).
type Rates struct {
	PresentAccuracy   *float64 `json:"observed_present_accuracy"`
	MissRate          *float64 `json:"observed_miss_rate"`
	WrongRate         *float64 `json:"observed_wrong_rate"`
	HallucinationRate *float64 `json:"observed_hallucination_rate"`
}

// RatesFrom derives Rates from Counts. Rates are never stored independently;
// aggregates recompute them from summed counts rather than averaging
// per-document rates, which would weight small documents equally with large.
func RatesFrom(c Counts) Rates {
	presentDenom := c.Correct + c.WrongValue + c.Miss
	absentDenom := c.Hallucination + c.CorrectAbsent
	return Rates{
		PresentAccuracy:   ratio(c.Correct, presentDenom),
		MissRate:          ratio(c.Miss, presentDenom),
		WrongRate:         ratio(c.WrongValue, presentDenom),
		HallucinationRate: ratio(c.Hallucination, absentDenom),
	}
}

// ratio returns num/denom, or nil when denom is zero.
func ratio(num, denom int64) *float64 {
	if denom == 0 {
		return nil
	}
	r := float64(num) / float64(denom)
	return &r
}
