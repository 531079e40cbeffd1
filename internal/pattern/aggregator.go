package pattern

import (
	"regexp"
	"sort"
	"strings"
)

// Tuning holds the empirically-chosen aggregation constants. The values are
// behavioral contract, not derived; override only deliberately.
type Tuning struct {
	SimilarityThreshold float64
	MinFrequency        int
	BaseConfidence      float64
	FrequencyStep       float64
	FrequencyCap        float64
	SignatureBonus      float64
	VariationPenalty    float64
	VariationLimit      int
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		SimilarityThreshold: 0.7,
		MinFrequency:        2,
		BaseConfidence:      0.5,
		FrequencyStep:       0.1,
		FrequencyCap:        0.3,
		SignatureBonus:      0.2,
		VariationPenalty:    0.1,
		VariationLimit:      5,
	}
}

// Analysis is the aggregated view of one normalized pattern within one
// category. Frequency is always >= the tuning floor; singletons are noise.
type Analysis struct {
	Pattern         string
	Category        Category
	Frequency       int
	Variations      []string
	StandardMapping string
	Confidence      float64
}

// Aggregator folds classified matches into per-pattern analyses.
type Aggregator struct {
	tuning Tuning
}

// NewAggregator builds an aggregator with the given tuning.
func NewAggregator(t Tuning) *Aggregator {
	return &Aggregator{tuning: t}
}

// strongSignature marks values with an explicit domain marker: a unit suffix
// or a NEMA/IEC/CS device prefix. Such patterns earn a confidence bonus.
var strongSignature = regexp.MustCompile(`(?i)(\d\s*(?:ft|feet|foot|in|inch|inches|v|volts?|a|amps?|awg)\b|\bL?\d{1,2}-\d{2}[PR]?\b|\bCS\d{3,5}|\bIEC\s*\d)`)

// Aggregate groups matches by (category, normalized value), drops keys seen
// fewer than MinFrequency times, clusters variant spellings, and scores
// confidence. The same raw string may surface in several categories; each
// (category, key) pair is independent. Output order is deterministic:
// category, then frequency descending, then pattern.
func (a *Aggregator) Aggregate(matches []PatternMatch) []Analysis {
	type key struct {
		cat Category
		pat string
	}
	counts := make(map[key]int)
	rawByCategory := make(map[Category][]string)
	rawSeen := make(map[key]struct{})
	for _, m := range matches {
		norm := strings.ToLower(strings.TrimSpace(m.Value))
		if norm == "" {
			continue
		}
		counts[key{m.Category, norm}]++
		rk := key{m.Category, m.Value}
		if _, ok := rawSeen[rk]; !ok {
			rawSeen[rk] = struct{}{}
			rawByCategory[m.Category] = append(rawByCategory[m.Category], m.Value)
		}
	}

	var out []Analysis
	for k, freq := range counts {
		if freq < a.tuning.MinFrequency {
			continue
		}
		variations := a.cluster(k.pat, rawByCategory[k.cat])
		out = append(out, Analysis{
			Pattern:         k.pat,
			Category:        k.cat,
			Frequency:       freq,
			Variations:      variations,
			StandardMapping: StandardColumn(k.cat),
			Confidence:      a.confidence(k.pat, freq, len(variations)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Pattern < out[j].Pattern
	})
	return out
}

// cluster collects the raw spellings related to the normalized key within its
// category, sorted for determinism.
func (a *Aggregator) cluster(norm string, raws []string) []string {
	var out []string
	for _, raw := range raws {
		if strings.ToLower(strings.TrimSpace(raw)) == norm {
			out = append(out, raw)
			continue
		}
		if Related(norm, raw, a.tuning.SimilarityThreshold) {
			out = append(out, raw)
		}
	}
	sort.Strings(out)
	return out
}

// confidence starts at the base, rewards frequency up to a cap, rewards a
// strong domain signature, and penalizes oversized variation clusters, then
// clamps to [0,1]. Monotonically non-decreasing in frequency.
func (a *Aggregator) confidence(pattern string, freq, variations int) float64 {
	c := a.tuning.BaseConfidence
	bump := float64(freq) * a.tuning.FrequencyStep
	if bump > a.tuning.FrequencyCap {
		bump = a.tuning.FrequencyCap
	}
	c += bump
	if strongSignature.MatchString(pattern) {
		c += a.tuning.SignatureBonus
	}
	if variations > a.tuning.VariationLimit {
		c -= a.tuning.VariationPenalty
	}
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return c
}
