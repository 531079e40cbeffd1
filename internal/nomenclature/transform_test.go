package nomenclature

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransformRowFirstWriterWins(t *testing.T) {
	t.Parallel()

	// two active rules target the same column; the higher-priority one runs
	// first and must survive
	rules := []Rule{
		{
			Name:          "high",
			SourcePattern: regexp.MustCompile(`(?i)50\s*ft`),
			TargetColumn:  "Length (ft)",
			Transform:     TransformExtractNumberUnit,
			Priority:      10,
			IsActive:      true,
		},
		{
			Name:          "low",
			SourcePattern: regexp.MustCompile(`(?i)\d+\s*ft`),
			TargetColumn:  "Length (ft)",
			Transform:     TransformExtractNumberUnit,
			Priority:      5,
			IsActive:      true,
		},
	}
	tr := NewTransformer(rules)

	// first cell matches both rules; second cell matches only the low rule
	row := tr.TransformRow([]string{"50 ft", "25 ft"})
	require.Equal(t, "50", row[ColumnIndex("Length (ft)")])
}

func TestTransformRowInactiveRulesSkipped(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{
			Name:          "dormant",
			SourcePattern: regexp.MustCompile(`(?i)\d+\s*ft`),
			TargetColumn:  "Length (ft)",
			Transform:     TransformExtractNumberUnit,
			Priority:      10,
			IsActive:      false,
		},
	}
	tr := NewTransformer(rules)

	row := tr.TransformRow([]string{"50 ft"})
	require.Empty(t, row[ColumnIndex("Length (ft)")])
}

func TestTransformRowZeroMatchesStillEmits(t *testing.T) {
	t.Parallel()

	tr := NewTransformer(nil)
	row := tr.TransformRow([]string{"nothing", "recognizable"})

	require.Len(t, row, len(PreSalColumns))
	require.NotEmpty(t, row[ColumnIndex("ID")])
	require.Equal(t, "1", row[ColumnIndex("Order QTY")])
	for i, cell := range row {
		if i == ColumnIndex("ID") || i == ColumnIndex("Order QTY") {
			continue
		}
		require.Empty(t, cell)
	}
}

func TestTransformRowCellLookaheadBounded(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{
			Name:          "length",
			SourcePattern: regexp.MustCompile(`(?i)\d+\s*ft`),
			TargetColumn:  "Length (ft)",
			Transform:     TransformExtractNumberUnit,
			Priority:      10,
			IsActive:      true,
		},
	}
	tr := NewTransformer(rules)

	// the only match sits past the 10-cell lookahead
	source := make([]string, 12)
	source[11] = "50 ft"
	row := tr.TransformRow(source)
	require.Empty(t, row[ColumnIndex("Length (ft)")])
}

func TestTransformFunctions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fn    TransformFunc
		in    string
		want  string
	}{
		{TransformExtractNumberUnit, "50ft", "50"},
		{TransformExtractNumberUnit, "12.5 feet", "12.5"},
		{TransformExtractVoltage, "208V", "208"},
		{TransformExtractCurrent, "30 amps", "30"},
		{TransformNormalizeReceptacle, "L5-20R receptacle", "L5-20R"},
		{TransformNormalizeReceptacle, "outlet cs8269a", "CS8269A"},
		{TransformDirectMapping, "  MMC  ", "MMC"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, applyTransform(tc.fn, tc.in), "%s(%q)", tc.fn, tc.in)
	}
}

func TestTransformRowsOnePerSource(t *testing.T) {
	t.Parallel()

	tr := NewTransformer(nil)
	out := tr.TransformRows([][]string{{"a"}, {"b"}, {"c"}})
	require.Len(t, out, 3)
}
