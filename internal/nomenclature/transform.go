package nomenclature

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// maxCellsPerRow bounds how deep into a source row the transformer looks.
// Real whip sheets front-load the interesting cells; scanning hundreds of
// trailing columns buys nothing.
const maxCellsPerRow = 10

var firstNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Transformer applies a priority-ordered rule set to source rows, producing
// fixed-width PreSal rows.
type Transformer struct {
	rules []Rule
}

// NewTransformer keeps only active rules, preserving the given order (callers
// pass the BuildRules output, already sorted by descending priority).
func NewTransformer(rules []Rule) *Transformer {
	active := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return &Transformer{rules: active}
}

// TransformRow maps one source row onto the PreSal schema. Columns fill
// first-writer-wins: once a rule claims a column for this row, later matches
// against the same column are ignored. Rows with zero matches still emit,
// carrying only the ID and quantity defaults.
func (t *Transformer) TransformRow(source []string) []string {
	out := make([]string, len(PreSalColumns))
	limit := len(source)
	if limit > maxCellsPerRow {
		limit = maxCellsPerRow
	}
	for i := 0; i < limit; i++ {
		cell := strings.TrimSpace(source[i])
		if cell == "" {
			continue
		}
		for _, rule := range t.rules {
			if !rule.SourcePattern.MatchString(cell) {
				continue
			}
			idx := ColumnIndex(rule.TargetColumn)
			if idx < 0 || out[idx] != "" {
				continue
			}
			out[idx] = applyTransform(rule.Transform, cell)
			break
		}
	}
	if id := ColumnIndex("ID"); out[id] == "" {
		out[id] = uuid.NewString()
	}
	if qty := ColumnIndex("Order QTY"); out[qty] == "" {
		out[qty] = "1"
	}
	return out
}

// TransformRows maps a sheet slice, one PreSal row per source row.
func (t *Transformer) TransformRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, t.TransformRow(row))
	}
	return out
}

func applyTransform(fn TransformFunc, value string) string {
	switch fn {
	case TransformExtractNumberUnit, TransformExtractVoltage, TransformExtractCurrent:
		return extractNumber(value)
	case TransformNormalizeReceptacle:
		return normalizeReceptacle(value)
	default:
		return strings.TrimSpace(value)
	}
}

// extractNumber pulls the first embedded integer or decimal and re-renders it
// numerically, dropping the unit suffix.
func extractNumber(value string) string {
	m := firstNumber.FindString(value)
	if m == "" {
		return strings.TrimSpace(value)
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return m
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

var receptacleNoise = regexp.MustCompile(`(?i)\b(?:receptacle|outlet)\b`)

func normalizeReceptacle(value string) string {
	cleaned := receptacleNoise.ReplaceAllString(value, "")
	return strings.ToUpper(strings.TrimSpace(cleaned))
}
