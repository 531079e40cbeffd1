package specparse

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateDistributionExactness(t *testing.T) {
	t.Parallel()

	spec := Spec{
		TotalQuantity:   25,
		DiscreteLengths: []int{20, 40, 60, 80},
		ConduitType:     "LMZC",
		ReceptacleType:  "CS8269A",
		Colors:          []string{"Red", "Orange", "Blue", "Yellow"},
		TailLength:      "10",
	}
	rows := Generate(spec)
	require.Len(t, rows, 25)

	// 16 configs, base 1, remainder 9: nine configs carry 2 rows, seven carry 1
	counts := map[string]int{}
	for _, row := range rows {
		counts[row]++
	}
	require.Len(t, counts, 16)
	twos, ones := 0, 0
	for _, n := range counts {
		switch n {
		case 2:
			twos++
		case 1:
			ones++
		default:
			t.Fatalf("unexpected per-config count %d", n)
		}
	}
	require.Equal(t, 9, twos)
	require.Equal(t, 7, ones)
}

func TestGenerateLengthMajorOrder(t *testing.T) {
	t.Parallel()

	spec := Spec{
		TotalQuantity:   4,
		DiscreteLengths: []int{10, 20},
		ConduitType:     "FMC",
		ReceptacleType:  "L5-20R",
		Colors:          []string{"Red", "Blue"},
		TailLength:      "10",
	}
	rows := Generate(spec)
	require.Equal(t, []string{
		"L5-20R, FMC, 10, 10, Red",
		"L5-20R, FMC, 10, 10, Blue",
		"L5-20R, FMC, 20, 10, Red",
		"L5-20R, FMC, 20, 10, Blue",
	}, rows)
}

func TestGenerateRowFormat(t *testing.T) {
	t.Parallel()

	p := NewParser(StockDefaults())
	spec := p.Parse("20 power whips total, lengths: 10, 20")
	rows := Generate(spec)
	require.Len(t, rows, 20)

	form := regexp.MustCompile(`^CS8269A, LMZC, (10|20), 10, (Red|Orange|Blue|Yellow)$`)
	for _, row := range rows {
		require.Regexp(t, form, row)
	}
}

func TestGenerateZeroQuantity(t *testing.T) {
	t.Parallel()

	spec := Spec{DiscreteLengths: []int{10}, Colors: []string{"Red"}}
	require.Empty(t, Generate(spec))
}

func TestGenerateEmptyConfigs(t *testing.T) {
	t.Parallel()

	// no lengths resolvable: nothing to distribute over, no division by zero
	require.Empty(t, Generate(Spec{TotalQuantity: 10, Colors: []string{"Red"}}))
	require.Empty(t, Generate(Spec{TotalQuantity: 10, DiscreteLengths: []int{10}}))
}

func TestGenerateAlwaysExact(t *testing.T) {
	t.Parallel()

	for _, total := range []int{1, 7, 16, 33, 100} {
		spec := Spec{
			TotalQuantity:   total,
			DiscreteLengths: []int{10, 25, 50},
			ConduitType:     "LMZC",
			ReceptacleType:  "CS8269A",
			Colors:          []string{"Red", "Blue"},
			TailLength:      "10",
		}
		require.Len(t, Generate(spec), total, fmt.Sprintf("total %d", total))
	}
}

func TestExpandPatternRepeatSuffix(t *testing.T) {
	t.Parallel()

	rows := ExpandPattern("L5-20R, FMC, 300, 10!25")
	require.Len(t, rows, 25)
	for _, row := range rows {
		require.Equal(t, "L5-20R, FMC, 300, 10", row)
	}
}

func TestExpandPatternPlain(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"CS8269A, LMZC, 50, 10, Red"}, ExpandPattern("CS8269A, LMZC, 50, 10, Red"))
	require.Empty(t, ExpandPattern("   "))
}

func TestExpandPatterns(t *testing.T) {
	t.Parallel()

	rows := ExpandPatterns([]string{"a, b, 10, 10!2", "c, d, 20, 10"})
	require.Equal(t, []string{"a, b, 10, 10", "a, b, 10, 10", "c, d, 20, 10"}, rows)
}
