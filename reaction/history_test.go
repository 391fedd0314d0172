package reaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ReactionTest/reaction"
)

func TestHistoryKeepsFiveNewestFirst(t *testing.T) {
	h := reaction.NewHistory()
	for _, ms := range []int64{100, 200, 300, 400, 500, 600} {
		h.Record(reaction.Millis(ms))
		assert.LessOrEqual(t, len(h.Attempts()), reaction.HistorySize)
	}

	want := []reaction.Outcome{600, 500, 400, 300, 200}
	assert.Equal(t, want, h.Attempts())
}

func TestHistoryAttemptsIsCopy(t *testing.T) {
	h := reaction.NewHistory()
	h.Record(reaction.Millis(250))

	got := h.Attempts()
	got[0] = reaction.TooEarly
	assert.Equal(t, []reaction.Outcome{250}, h.Attempts())
}

func TestHistoryBestIsMonotone(t *testing.T) {
	h := reaction.NewHistory()
	_, ok := h.Best()
	assert.False(t, ok)

	seq := []reaction.Outcome{
		reaction.TooEarly, 420, 380, reaction.TooEarly, 390, 150, 700, reaction.TooEarly,
	}
	var prev reaction.Outcome = -1
	for _, o := range seq {
		h.Record(o)
		best, ok := h.Best()
		if !ok {
			continue
		}
		if prev >= 0 {
			assert.LessOrEqual(t, best, prev)
		}
		prev = best
	}

	best, ok := h.Best()
	require.True(t, ok)
	assert.Equal(t, reaction.Outcome(150), best)
}

func TestHistoryBestIgnoresTooEarly(t *testing.T) {
	h := reaction.NewHistory()
	h.Record(reaction.TooEarly)
	_, ok := h.Best()
	assert.False(t, ok)

	h.Record(reaction.Millis(320))
	h.Record(reaction.TooEarly)
	best, ok := h.Best()
	require.True(t, ok)
	assert.Equal(t, reaction.Outcome(320), best)
}

func TestHistoryBestSurvivesEviction(t *testing.T) {
	h := reaction.NewHistory()
	h.Record(reaction.Millis(90))
	for i := 0; i < reaction.HistorySize; i++ {
		h.Record(reaction.Millis(400))
	}
	assert.NotContains(t, h.Attempts(), reaction.Outcome(90))

	best, ok := h.Best()
	require.True(t, ok)
	assert.Equal(t, reaction.Outcome(90), best)
}

func TestHistoryAverage(t *testing.T) {
	h := reaction.NewHistory()
	avg, ok := h.Average()
	assert.False(t, ok)
	assert.Zero(t, avg)

	// recorded oldest first so the log reads [120, TooEarly, 300]
	h.Record(reaction.Millis(300))
	h.Record(reaction.TooEarly)
	h.Record(reaction.Millis(120))
	assert.Equal(t, []reaction.Outcome{120, reaction.TooEarly, 300}, h.Attempts())

	avg, ok = h.Average()
	require.True(t, ok)
	assert.InDelta(t, 210.00, avg, 1e-9)
	assert.Equal(t, "210.00", reaction.FormatAverage(avg, ok))
}

func TestHistoryAverageRoundsToTwoDecimals(t *testing.T) {
	h := reaction.NewHistory()
	h.Record(reaction.Millis(100))
	h.Record(reaction.Millis(100))
	h.Record(reaction.Millis(101))

	avg, ok := h.Average()
	require.True(t, ok)
	assert.InDelta(t, 100.33, avg, 1e-9)
	assert.Equal(t, "100.33", reaction.FormatAverage(avg, ok))
}

func TestHistoryAverageOnlyCountsRetainedWindow(t *testing.T) {
	h := reaction.NewHistory()
	h.Record(reaction.Millis(1000))
	for i := 0; i < reaction.HistorySize; i++ {
		h.Record(reaction.Millis(200))
	}

	avg, ok := h.Average()
	require.True(t, ok)
	assert.InDelta(t, 200.0, avg, 1e-9)
}

func TestHistoryAverageAllTooEarly(t *testing.T) {
	h := reaction.NewHistory()
	for i := 0; i < 3; i++ {
		h.Record(reaction.TooEarly)
	}

	avg, ok := h.Average()
	assert.False(t, ok)
	assert.Equal(t, "N/A", reaction.FormatAverage(avg, ok))
}

func TestOutcome(t *testing.T) {
	assert.False(t, reaction.TooEarly.Valid())
	assert.Equal(t, "too early", reaction.TooEarly.String())
	assert.True(t, reaction.Millis(0).Valid())
	assert.Equal(t, reaction.Outcome(0), reaction.Millis(-5))
	assert.Equal(t, "245ms", reaction.Millis(245).String())
	assert.Equal(t, int64(245), reaction.Millis(245).Millis())
}
