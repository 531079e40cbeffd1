package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func matchesFor(cat Category, values ...string) []PatternMatch {
	out := make([]PatternMatch, 0, len(values))
	for i, v := range values {
		out = append(out, PatternMatch{Category: cat, Value: v, GlobalIndex: i})
	}
	return out
}

func TestAggregateFrequencyFloor(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultTuning())

	matches := matchesFor(CategoryLength,
		"50ft", "50ft", "50ft",
		"once-only 25ft value")
	analyses := agg.Aggregate(matches)

	require.Len(t, analyses, 1)
	require.Equal(t, "50ft", analyses[0].Pattern)
	for _, a := range analyses {
		require.GreaterOrEqual(t, a.Frequency, 2)
	}
}

func TestAggregateConfidenceBounds(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultTuning())

	var matches []PatternMatch
	for i := 0; i < 40; i++ {
		matches = append(matches, PatternMatch{Category: CategoryLength, Value: "50ft"}, PatternMatch{Category: CategoryGeneral, Value: "misc token"})
	}
	for _, a := range agg.Aggregate(matches) {
		require.GreaterOrEqual(t, a.Confidence, 0.0)
		require.LessOrEqual(t, a.Confidence, 1.0)
	}
}

func TestAggregateConfidenceMonotonicInFrequency(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultTuning())

	low := agg.Aggregate(matchesFor(CategoryLength, "50ft", "50ft"))
	high := agg.Aggregate(matchesFor(CategoryLength, "50ft", "50ft", "50ft", "50ft"))
	require.Len(t, low, 1)
	require.Len(t, high, 1)
	require.GreaterOrEqual(t, high[0].Confidence, low[0].Confidence)
}

func TestAggregateStrongSignatureBonus(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultTuning())

	withUnit := agg.Aggregate(matchesFor(CategoryLength, "50ft", "50ft"))
	bare := agg.Aggregate(matchesFor(CategoryGeneral, "widget", "widget"))
	require.Len(t, withUnit, 1)
	require.Len(t, bare, 1)
	require.Greater(t, withUnit[0].Confidence, bare[0].Confidence)
}

func TestAggregateVariationCluster(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultTuning())

	matches := matchesFor(CategoryCable,
		"liquid tight", "liquid tight", "Liquid-Tight", "LIQUIDTIGHT",
		"completely unrelated")
	analyses := agg.Aggregate(matches)

	require.Len(t, analyses, 1)
	vars := analyses[0].Variations
	require.Contains(t, vars, "liquid tight")
	require.Contains(t, vars, "Liquid-Tight")
	require.Contains(t, vars, "LIQUIDTIGHT")
	require.NotContains(t, vars, "completely unrelated")
}

func TestAggregateSameStringTwoCategories(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultTuning())

	matches := append(
		matchesFor(CategoryLength, "50ft mmc", "50ft mmc"),
		matchesFor(CategoryCable, "50ft mmc", "50ft mmc")...)
	analyses := agg.Aggregate(matches)

	require.Len(t, analyses, 2)
	cats := []Category{analyses[0].Category, analyses[1].Category}
	require.Contains(t, cats, CategoryLength)
	require.Contains(t, cats, CategoryCable)
}

func TestAggregateStandardMapping(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultTuning())

	analyses := agg.Aggregate(matchesFor(CategoryVoltage, "208v", "208v"))
	require.Len(t, analyses, 1)
	require.Equal(t, "Voltage (V)", analyses[0].StandardMapping)
}

func TestAggregateDeterministicOrder(t *testing.T) {
	t.Parallel()
	agg := NewAggregator(DefaultTuning())

	matches := append(
		matchesFor(CategoryVoltage, "208v", "208v", "120v", "120v", "120v"),
		matchesFor(CategoryLength, "50ft", "50ft")...)

	first := agg.Aggregate(matches)
	second := agg.Aggregate(matches)
	require.Equal(t, first, second)
	// frequency descending within a category
	require.Equal(t, "120v", first[1].Pattern)
	require.Equal(t, "208v", first[2].Pattern)
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 1.0, Similarity("Liquid-Tight", "liquid tight"), 1e-9)
	require.Greater(t, Similarity("LFMC", "FMC"), 0.7)
	require.Less(t, Similarity("red", "voltage"), 0.3)
	require.True(t, Related("50ft", "50 ft whip", 0.7)) // containment
}
