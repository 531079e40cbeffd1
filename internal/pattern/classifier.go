package pattern

import (
	"regexp"
	"strings"
)

// Match is one classified fragment of a cell value.
type Match struct {
	Category Category
	Value    string
}

// PatternMatch is a Match anchored to its source cell.
type PatternMatch struct {
	ID          string
	Category    Category
	Value       string
	CellAddress string
	SheetName   string
	GlobalIndex int
}

// CategoryDef is one category's ordered regex family. The first expression
// that matches supplies the matched substring for that category.
type CategoryDef struct {
	Category Category
	Exprs    []*regexp.Regexp
}

// Classifier tests cell values against every category definition. Definitions
// are fixed at construction so classifiers can be shared across goroutines.
type Classifier struct {
	defs []CategoryDef
}

// NewClassifier builds a classifier over the given definitions.
func NewClassifier(defs []CategoryDef) *Classifier {
	return &Classifier{defs: defs}
}

// DefaultCategories returns the built-in power-whip category definitions.
// Order matters only for the general catch-all, which is suppressed whenever
// a more specific category matched.
func DefaultCategories() []CategoryDef {
	return []CategoryDef{
		{Category: CategoryReceptacle, Exprs: compile(
			`\bL\d{1,2}-\d{2}[PR]?\b`,      // NEMA locking (L5-20R)
			`\b\d{1,2}-\d{2}[PR]\b`,        // NEMA straight blade (5-15R)
			`\bCS\d{3,5}[A-Z]*\b`,          // California Standard (CS8269A)
			`\bIEC\s*\d{2,3}[AP]?\b`,       // IEC 60309 shorthand
			`\b(?:nema|receptacle|outlet|plug)\s*:?\s*([A-Z]{0,2}\d{1,2}-\d{2}[PR]?)\b`,
		)},
		{Category: CategoryCable, Exprs: compile(
			`\b(?:MMC|LFMC|FMC|LMZC|EMT|PVC|MC|AC|SO)\b`,
			`liquid\s*-?\s*tight`,
			`\bflex(?:ible)?\s*(?:metal(?:lic)?)?\s*conduit\b`,
			`\bmetal\s*clad\b`,
		)},
		{Category: CategoryTailLength, Exprs: compile(
			`(?:pig\s*tail|tail)\s*(?:length)?\s*:?\s*\d+(?:\.\d+)?\s*(?:ft|feet|foot|in|inch|inches)?`,
			`\d+(?:\.\d+)?\s*(?:ft|feet|foot|in|inch|inches)?\.?\s*(?:pig\s*tail|tail)`,
		)},
		{Category: CategoryLength, Exprs: compile(
			`\b\d+(?:\.\d+)?\s*(?:ft|feet|foot)\.?\b`,
			`\b\d+(?:\.\d+)?\s*(?:in|inch|inches)\.?\b`,
			`\b(?:length|whip)\s*:?\s*\d+(?:\.\d+)?\b`,
		)},
		{Category: CategoryVoltage, Exprs: compile(
			`\b\d+(?:\.\d+)?\s*(?:v|volts?|vac|vdc)\b`,
			`\bvoltage\s*:?\s*\d+(?:\.\d+)?\b`,
			`\b\d{3}\s*/\s*\d{3}\s*v\b`,
		)},
		{Category: CategoryCurrent, Exprs: compile(
			`\b\d+(?:\.\d+)?\s*(?:a|amps?|amperes?)\b`,
			`\b(?:current|amperage)\s*:?\s*\d+(?:\.\d+)?\b`,
		)},
		{Category: CategoryWireGauge, Exprs: compile(
			`#?\d{1,2}(?:/\d)?\s*AWG\b`,
			`\bgauge\s*:?\s*\d{1,2}\b`,
			`\b\d{1,2}\s*ga\.?\b`,
		)},
		{Category: CategoryColor, Exprs: compile(
			`\b(?:red|orange|yellow|green|blue|purple|violet|brown|black|white|gr[ae]y|pink|ivory)\b`,
		)},
		{Category: CategoryGeneral, Exprs: compile(
			`\b[A-Z]{1,4}-?\d{2,6}[A-Z]{0,2}\b`,
		)},
	}
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

// Classify tests value against every category family. A single value can hit
// several categories ("50ft MMC" is both a length and a cable type). The
// general catch-all only fires when nothing more specific did. Empty and
// whitespace-only values never match.
func (cl *Classifier) Classify(value string) []Match {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []Match
	tail := false
	for _, def := range cl.defs {
		if def.Category == CategoryGeneral && len(out) > 0 {
			continue
		}
		// a tail-length hit claims the numeric; plain length must not double-count it
		if def.Category == CategoryLength && tail {
			continue
		}
		for _, re := range def.Exprs {
			m := re.FindString(value)
			if m == "" {
				continue
			}
			out = append(out, Match{Category: def.Category, Value: strings.TrimSpace(m)})
			if def.Category == CategoryTailLength {
				tail = true
			}
			break
		}
	}
	return out
}
