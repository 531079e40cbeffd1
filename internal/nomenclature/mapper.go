package nomenclature

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/whipsal/whipsal/internal/pattern"
)

// Mapping is the resolved canonical mapping for one category.
type Mapping struct {
	Category      pattern.Category
	StandardTerm  string
	OriginalTerms []string
	MappingRule   string
	Confidence    float64
}

// TransformFunc names a pure value transform applied by the row transformer.
type TransformFunc string

const (
	TransformExtractNumberUnit   TransformFunc = "extract-number-unit"
	TransformExtractVoltage      TransformFunc = "extract-voltage"
	TransformExtractCurrent      TransformFunc = "extract-current"
	TransformNormalizeReceptacle TransformFunc = "normalize-receptacle"
	TransformDirectMapping       TransformFunc = "direct-mapping"
)

// Rule is an executable transformation instruction. Rules run in descending
// Priority order; the first active rule matching a cell wins its column.
type Rule struct {
	Name          string
	SourcePattern *regexp.Regexp
	TargetColumn  string
	Transform     TransformFunc
	Priority      int
	IsActive      bool
}

// ActiveConfidenceFloor is the default confidence a mapping must clear for
// its generated rule to start active.
const ActiveConfidenceFloor = 0.7

// Mapper turns aggregated analyses into mappings and rules.
type Mapper struct {
	ActiveFloor float64
}

// NewMapper builds a mapper with the stock active-rule floor.
func NewMapper() *Mapper {
	return &Mapper{ActiveFloor: ActiveConfidenceFloor}
}

// BuildMappings groups analyses by category and resolves one mapping per
// observed category. Aggregate confidence is the member mean plus a group
// size bonus capped at 0.2, clamped to 1.
func (m *Mapper) BuildMappings(analyses []pattern.Analysis) []Mapping {
	grouped := make(map[pattern.Category][]pattern.Analysis)
	var order []pattern.Category
	for _, a := range analyses {
		if _, seen := grouped[a.Category]; !seen {
			order = append(order, a.Category)
		}
		grouped[a.Category] = append(grouped[a.Category], a)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	out := make([]Mapping, 0, len(order))
	for _, cat := range order {
		group := grouped[cat]
		terms := make([]string, 0, len(group))
		sum := 0.0
		for _, a := range group {
			terms = append(terms, a.Pattern)
			sum += a.Confidence
		}
		sort.Strings(terms)
		conf := sum/float64(len(group)) + math.Min(0.1*float64(len(group)), 0.2)
		if conf > 1 {
			conf = 1
		}
		std := pattern.StandardColumn(cat)
		out = append(out, Mapping{
			Category:      cat,
			StandardTerm:  std,
			OriginalTerms: terms,
			MappingRule:   fmt.Sprintf("map %d %s variant(s) to %q", len(terms), cat, std),
			Confidence:    conf,
		})
	}
	return out
}

// categoryBonus favors length over the electrical trio over everything else
// when computing rule priority.
func categoryBonus(cat pattern.Category) int {
	switch cat {
	case pattern.CategoryLength, pattern.CategoryTailLength:
		return 3
	case pattern.CategoryReceptacle, pattern.CategoryVoltage, pattern.CategoryCurrent:
		return 2
	default:
		return 1
	}
}

func transformFor(cat pattern.Category) TransformFunc {
	switch cat {
	case pattern.CategoryLength, pattern.CategoryTailLength:
		return TransformExtractNumberUnit
	case pattern.CategoryVoltage:
		return TransformExtractVoltage
	case pattern.CategoryCurrent:
		return TransformExtractCurrent
	case pattern.CategoryReceptacle:
		return TransformNormalizeReceptacle
	default:
		return TransformDirectMapping
	}
}

// BuildRules generates one rule per mapping, appends the built-in baseline
// rules, and sorts descending by priority. The sort is stable so data-derived
// rules stay ahead of the built-ins on ties.
func (m *Mapper) BuildRules(mappings []Mapping) []Rule {
	rules := make([]Rule, 0, len(mappings)+3)
	for _, mp := range mappings {
		alternation := make([]string, 0, len(mp.OriginalTerms))
		for _, t := range mp.OriginalTerms {
			alternation = append(alternation, regexp.QuoteMeta(t))
		}
		src := regexp.MustCompile(`(?i)(` + strings.Join(alternation, "|") + `)`)
		rules = append(rules, Rule{
			Name:          fmt.Sprintf("%s-standardization", mp.Category),
			SourcePattern: src,
			TargetColumn:  mp.StandardTerm,
			Transform:     transformFor(mp.Category),
			Priority:      int(math.Round(mp.Confidence*10)) + categoryBonus(mp.Category),
			IsActive:      mp.Confidence > m.ActiveFloor,
		})
	}
	rules = append(rules, builtinRules()...)
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Priority > rules[j].Priority })
	return rules
}

// builtinRules guarantee baseline length, receptacle, and voltage coverage
// even when the corpus is too sparse to earn confident mappings.
func builtinRules() []Rule {
	return []Rule{
		{
			Name:          "builtin-length",
			SourcePattern: regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:ft|feet|foot)\.?\b`),
			TargetColumn:  "Length (ft)",
			Transform:     TransformExtractNumberUnit,
			Priority:      10,
			IsActive:      true,
		},
		{
			Name:          "builtin-receptacle",
			SourcePattern: regexp.MustCompile(`(?i)\b(?:L\d{1,2}-\d{2}[PR]?|\d{1,2}-\d{2}[PR]|CS\d{3,5}[A-Z]*)\b`),
			TargetColumn:  "Receptacle Type",
			Transform:     TransformNormalizeReceptacle,
			Priority:      9,
			IsActive:      true,
		},
		{
			Name:          "builtin-voltage",
			SourcePattern: regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:v|volts?)\b`),
			TargetColumn:  "Voltage (V)",
			Transform:     TransformExtractVoltage,
			Priority:      8,
			IsActive:      true,
		},
	}
}
