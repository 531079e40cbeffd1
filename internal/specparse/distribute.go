package specparse

import (
	"fmt"
	"strconv"
	"strings"
)

// Generate expands a spec into one comma-delimited pattern row per unit:
// "<receptacle>, <cableType>, <length>, <tailLength>, <color>". The requested
// total distributes evenly over the lengths x colors cross product
// (length-major order); the first remainder configurations each absorb one
// extra unit, so the output length always equals TotalQuantity exactly.
func Generate(spec Spec) []string {
	if spec.TotalQuantity <= 0 {
		return []string{}
	}
	lengths := spec.Lengths()
	colors := spec.Colors
	if len(lengths) == 0 || len(colors) == 0 {
		return []string{}
	}

	type config struct {
		length int
		color  string
	}
	configs := make([]config, 0, len(lengths)*len(colors))
	for _, l := range lengths {
		for _, c := range colors {
			configs = append(configs, config{l, c})
		}
	}

	base := spec.TotalQuantity / len(configs)
	remainder := spec.TotalQuantity % len(configs)

	out := make([]string, 0, spec.TotalQuantity)
	for i, cfg := range configs {
		n := base
		if i < remainder {
			n++
		}
		row := fmt.Sprintf("%s, %s, %d, %s, %s",
			spec.ReceptacleType, spec.ConduitType, cfg.length, spec.TailLength, cfg.color)
		for j := 0; j < n; j++ {
			out = append(out, row)
		}
	}
	return out
}

// ExpandPattern expands one literal pattern row. A trailing "!<n>" suffix
// repeats the row exactly n times ("L5-20R, FMC, 300, 10!25" emits 25 rows);
// without the suffix the row passes through once. Blank input expands to
// nothing.
func ExpandPattern(row string) []string {
	row = strings.TrimSpace(row)
	if row == "" {
		return nil
	}
	count := 1
	if bang := strings.LastIndex(row, "!"); bang >= 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(row[bang+1:])); err == nil && n >= 0 {
			count = n
			row = strings.TrimSpace(row[:bang])
		}
	}
	out := make([]string, count)
	for i := range out {
		out[i] = row
	}
	return out
}

// ExpandPatterns expands a batch of literal pattern rows in order.
func ExpandPatterns(rows []string) []string {
	var out []string
	for _, row := range rows {
		out = append(out, ExpandPattern(row)...)
	}
	return out
}
