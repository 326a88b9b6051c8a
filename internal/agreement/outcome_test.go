package agreement

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeWireNames(t *testing.T) {
	tests := []struct {
		outcome Outcome
		name    string
	}{
		{OutcomeCorrect, "correct"},
		{OutcomeWrongValue, "wrong_value"},
		{OutcomeMiss, "miss"},
		{OutcomeHallucination, "hallucination"},
		{OutcomeCorrectAbsent, "correct_absent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.outcome.String())

			data, err := json.Marshal(tt.outcome)
			require.NoError(t, err)
			assert.Equal(t, `"`+tt.name+`"`, string(data))

			var decoded Outcome
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.outcome, decoded)
		})
	}
}

func TestOutcomeUnmarshalRejectsUnknown(t *testing.T) {
	var o Outcome
	assert.Error(t, json.Unmarshal([]byte(`"almost_correct"`), &o))

	_, err := json.Marshal(Outcome(99))
	assert.Error(t, err)
}

func TestCountsAddAndTotal(t *testing.T) {
	var c Counts
	c.Add(OutcomeCorrect)
	c.Add(OutcomeCorrect)
	c.Add(OutcomeMiss)
	c.Add(OutcomeHallucination)

	assert.Equal(t, Counts{Correct: 2, Miss: 1, Hallucination: 1}, c)
	assert.Equal(t, int64(4), c.Total())
}

func TestCountsMerge(t *testing.T) {
	a := Counts{Correct: 3, WrongValue: 1, Miss: 2}
	b := Counts{Correct: 1, Hallucination: 4, CorrectAbsent: 1}

	a.Merge(b)
	assert.Equal(t, Counts{Correct: 4, WrongValue: 1, Miss: 2, Hallucination: 4, CorrectAbsent: 1}, a)
	assert.Equal(t, int64(12), a.Total())
}

func TestRatesFrom(t *testing.T) {
	rates := RatesFrom(Counts{Correct: 6, WrongValue: 2, Miss: 2, Hallucination: 1, CorrectAbsent: 3})

	require.NotNil(t, rates.PresentAccuracy)
	assert.InDelta(t, 0.6, *rates.PresentAccuracy, 1e-9)
	require.NotNil(t, rates.MissRate)
	assert.InDelta(t, 0.2, *rates.MissRate, 1e-9)
	require.NotNil(t, rates.WrongRate)
	assert.InDelta(t, 0.2, *rates.WrongRate, 1e-9)
	require.NotNil(t, rates.HallucinationRate)
	assert.InDelta(t, 0.25, *rates.HallucinationRate, 1e-9)
}

// A zero denominator yields nil rates, never zero: a document whose fields
// were all ruled absent has no present-accuracy at all.
func TestRatesNullSafety(t *testing.T) {
	rates := RatesFrom(Counts{Hallucination: 2, CorrectAbsent: 1})
	assert.Nil(t, rates.PresentAccuracy)
	assert.Nil(t, rates.MissRate)
	assert.Nil(t, rates.WrongRate)
	require.NotNil(t, rates.HallucinationRate)
	assert.InDelta(t, 2.0/3.0, *rates.HallucinationRate, 1e-9)

	empty := RatesFrom(Counts{})
	assert.Nil(t, empty.PresentAccuracy)
	assert.Nil(t, empty.HallucinationRate)

	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"observed_present_accuracy": null,
		"observed_miss_rate": null,
		"observed_wrong_rate": null,
		"observed_hallucination_rate": null
	}`, string(data))
}
