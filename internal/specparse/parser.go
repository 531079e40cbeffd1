// Package specparse turns short free-text order descriptions into concrete
// power-whip configuration rows.
package specparse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// LengthRange is an inclusive arithmetic sequence of whip lengths.
type LengthRange struct {
	Min  int
	Max  int
	Step int
}

// Spec is the structured intent parsed from free text. DiscreteLengths takes
// precedence over LengthRange when both are present.
type Spec struct {
	TotalQuantity   int
	LengthRange     *LengthRange
	DiscreteLengths []int
	ConduitType     string
	ReceptacleType  string
	Colors          []string
	TailLength      string
	Features        []string
}

// Defaults supplies the fallback values used for every field the text does
// not pin down. TotalQuantity has no fallback: an order without a quantity
// generates nothing.
type Defaults struct {
	ConduitType    string
	ReceptacleType string
	Colors         []string
	TailLength     string
	RangeStep      int
}

// StockDefaults returns the standard order defaults.
func StockDefaults() Defaults {
	return Defaults{
		ConduitType:    "LMZC",
		ReceptacleType: "CS8269A",
		Colors:         []string{"Red", "Orange", "Blue", "Yellow"},
		TailLength:     "10",
		RangeStep:      10,
	}
}

// Parser extracts a Spec from free text using keyword-driven, line-oriented
// matching. Synonym tables are fixed at construction.
type Parser struct {
	defaults   Defaults
	conduits   []synonym
	recepts    []synonym
	colorOrder []string
	colorAlias map[string]string
}

type synonym struct {
	keyword string
	code    string
}

// NewParser builds a parser with the given defaults and the built-in synonym
// tables.
func NewParser(d Defaults) *Parser {
	return &Parser{
		defaults: d,
		// longest keywords first so "liquid tight flex" resolves before "flex"
		conduits: []synonym{
			{"liquid tight", "LMZC"},
			{"liquid-tight", "LMZC"},
			{"liquidtight", "LMZC"},
			{"lmzc", "LMZC"},
			{"lfmc", "LFMC"},
			{"metal clad", "MC"},
			{"flex", "FMC"},
			{"fmc", "FMC"},
			{"mmc", "MMC"},
			{"emt", "EMT"},
			{"pvc", "PVC"},
			{"so cord", "SO"},
		},
		recepts: []synonym{
			{"cs8269a", "CS8269A"},
			{"cs8269", "CS8269A"},
			{"cs8365c", "CS8365C"},
			{"cs8365", "CS8365C"},
			{"nema l5-20", "L5-20R"},
			{"l5-20", "L5-20R"},
			{"nema l5-30", "L5-30R"},
			{"l5-30", "L5-30R"},
			{"nema l6-20", "L6-20R"},
			{"l6-20", "L6-20R"},
			{"nema l6-30", "L6-30R"},
			{"l6-30", "L6-30R"},
			{"nema l21-30", "L21-30R"},
			{"l21-30", "L21-30R"},
			{"iec 60309", "IEC309"},
			{"iec309", "IEC309"},
		},
		colorOrder: []string{"red", "orange", "yellow", "green", "blue", "purple", "brown", "black", "white", "gray", "grey"},
		colorAlias: map[string]string{
			"red": "Red", "orange": "Orange", "yellow": "Yellow", "green": "Green",
			"blue": "Blue", "purple": "Purple", "brown": "Brown", "black": "Black",
			"white": "White", "gray": "Gray", "grey": "Gray",
		},
	}
}

var (
	quantityRe = regexp.MustCompile(`(?i)(\d+)\s*(?:power\s*)?whips?\s*(?:total|needed|required)`)
	discreteRe = regexp.MustCompile(`(?i)lengths?\s*:\s*([\d,\s]+)`)
	rangeRe    = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	stepRe     = regexp.MustCompile(`(?i)(?:step|increments?\s*(?:of)?)\s*:?\s*(\d+)`)
	tailRe     = regexp.MustCompile(`(?i)(?:pig\s*)?tail(?:\s*length)?\s*:?\s*(\d+)`)
	featureRe  = regexp.MustCompile(`(?i)features?\s*:\s*(.+)`)
)

// Parse never fails: every field the text does not yield falls back to the
// parser defaults, and a missing quantity yields zero (which generates an
// empty distribution downstream).
func (p *Parser) Parse(text string) Spec {
	spec := Spec{
		ConduitType:    p.defaults.ConduitType,
		ReceptacleType: p.defaults.ReceptacleType,
		Colors:         append([]string(nil), p.defaults.Colors...),
		TailLength:     p.defaults.TailLength,
	}
	if strings.TrimSpace(text) == "" {
		return spec
	}
	lower := strings.ToLower(text)

	if m := quantityRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 {
			spec.TotalQuantity = n
		}
	}

	if m := discreteRe.FindStringSubmatch(text); m != nil {
		spec.DiscreteLengths = parseIntList(m[1])
	}
	if spec.DiscreteLengths == nil {
		for _, line := range strings.Split(lower, "\n") {
			if !strings.Contains(line, "length") {
				continue
			}
			if m := rangeRe.FindStringSubmatch(line); m != nil {
				lo, _ := strconv.Atoi(m[1])
				hi, _ := strconv.Atoi(m[2])
				if hi >= lo && lo > 0 {
					step := p.defaults.RangeStep
					if sm := stepRe.FindStringSubmatch(line); sm != nil {
						if s, err := strconv.Atoi(sm[1]); err == nil && s > 0 {
							step = s
						}
					}
					spec.LengthRange = &LengthRange{Min: lo, Max: hi, Step: step}
					break
				}
			}
		}
	}

	for _, syn := range p.conduits {
		if strings.Contains(lower, syn.keyword) {
			spec.ConduitType = syn.code
			break
		}
	}
	for _, syn := range p.recepts {
		if strings.Contains(lower, syn.keyword) {
			spec.ReceptacleType = syn.code
			break
		}
	}

	if colors := p.extractColors(lower); len(colors) > 0 {
		spec.Colors = colors
	}

	if m := tailRe.FindStringSubmatch(text); m != nil {
		spec.TailLength = m[1]
	}
	if m := featureRe.FindStringSubmatch(text); m != nil {
		for _, f := range strings.Split(m[1], ",") {
			if f = strings.TrimSpace(f); f != "" {
				spec.Features = append(spec.Features, f)
			}
		}
	}
	return spec
}

// extractColors returns canonical color names ordered by first appearance in
// the text.
func (p *Parser) extractColors(lower string) []string {
	type hit struct {
		pos   int
		color string
	}
	var hits []hit
	seen := map[string]bool{}
	for _, key := range p.colorOrder {
		pos := indexWord(lower, key)
		if pos < 0 {
			continue
		}
		canonical := p.colorAlias[key]
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		hits = append(hits, hit{pos, canonical})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.color)
	}
	return out
}

// indexWord finds key as a whole word, -1 when absent.
func indexWord(s, key string) int {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\b`)
	loc := re.FindStringIndex(s)
	if loc == nil {
		return -1
	}
	return loc[0]
}

func parseIntList(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil && n > 0 {
			out = append(out, n)
		}
	}
	return out
}

// Lengths resolves the iteration list: discrete lengths win, then the range
// expands inclusively, else nil.
func (s Spec) Lengths() []int {
	if len(s.DiscreteLengths) > 0 {
		return s.DiscreteLengths
	}
	if s.LengthRange == nil || s.LengthRange.Step <= 0 {
		return nil
	}
	var out []int
	for l := s.LengthRange.Min; l <= s.LengthRange.Max; l += s.LengthRange.Step {
		out = append(out, l)
	}
	return out
}
