// Package match scores observed points against equipment templates. One
// TemplateMatch is produced per template point at most, pairing it with the
// best-scoring observed point above the confidence threshold.
package match

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"bacmap/internal/config"
	"bacmap/internal/signature"
	"bacmap/internal/types"
)

// Matcher scores template points against observed points. Stateless apart
// from configuration; safe for concurrent use on distinct inputs.
type Matcher struct {
	cfg config.MatchingConfig
	sig *signature.Builder
}

// NewMatcher creates a template matcher.
func NewMatcher(cfg config.MatchingConfig, sig *signature.Builder) *Matcher {
	return &Matcher{cfg: cfg, sig: sig}
}

// candidate is one scored (template point, observed point) pair.
type candidate struct {
	observed      types.NormalizedPoint
	observedSig   types.PointSignature
	score         float64
	rawScore      float64
	functionMatch bool
	unitsMatch    bool
}

// Match scores every observed point against every template point, keeps the
// best observed point per template point, and returns matches at or above
// the confidence threshold sorted by score descending.
func (m *Matcher) Match(points []types.NormalizedPoint, template types.EquipmentTemplate) []types.TemplateMatch {
	if len(points) == 0 || len(template.Points) == 0 {
		return nil
	}

	observedSigs := make([]types.PointSignature, len(points))
	for i, p := range points {
		observedSigs[i] = m.sig.Build(p)
	}

	var matches []types.TemplateMatch
	for _, tp := range template.Points {
		templateSig := m.sig.Build(types.NormalizedPoint{
			NormalizedName: tp.Name,
			PointFunction:  tp.PointFunction,
			ObjectType:     tp.ObjectType,
			Units:          tp.Units,
		})

		best, ok := m.bestCandidate(tp, templateSig, points, observedSigs)
		if !ok || best.score < m.cfg.ConfidenceThreshold {
			continue
		}
		matches = append(matches, m.buildMatch(template.ID, tp, templateSig, best))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	if m.cfg.MaxResults > 0 && len(matches) > m.cfg.MaxResults {
		matches = matches[:m.cfg.MaxResults]
	}
	return matches
}

// bestCandidate scans the observed points for the highest-scoring pair.
// Ties prefer function agreement, then units agreement, then lexicographic
// object name.
func (m *Matcher) bestCandidate(tp types.PointTemplate, templateSig types.PointSignature, points []types.NormalizedPoint, sigs []types.PointSignature) (candidate, bool) {
	var best candidate
	found := false
	for i, p := range points {
		c := m.scorePair(tp, templateSig, p, sigs[i])
		if !found || better(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}

func better(a, b candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.functionMatch != b.functionMatch {
		return a.functionMatch
	}
	if a.unitsMatch != b.unitsMatch {
		return a.unitsMatch
	}
	return a.observed.ObjectName < b.observed.ObjectName
}

// scorePair computes the composite score for one pair.
func (m *Matcher) scorePair(tp types.PointTemplate, templateSig types.PointSignature, p types.NormalizedPoint, observedSig types.PointSignature) candidate {
	pattern := patternSimilarity(templateSig.NormalizedPattern, observedSig.NormalizedPattern)
	keywords := jaccard(templateSig.Keywords, observedSig.Keywords)

	functionMatch := tp.PointFunction == p.PointFunction
	function := 0.0
	if functionMatch {
		function = 1.0
	}

	context, unitsMatch := contextSimilarity(tp, p)

	raw := m.cfg.PatternWeight*pattern +
		m.cfg.KeywordWeight*keywords +
		m.cfg.FunctionWeight*function +
		m.cfg.ContextWeight*context

	score := raw
	if observedSig.Confidence > m.cfg.HighConfidenceFloor {
		score *= m.cfg.HighConfidenceBoost
	}
	if score > 1.0 {
		score = 1.0
	}

	return candidate{
		observed:      p,
		observedSig:   observedSig,
		score:         score,
		rawScore:      raw,
		functionMatch: functionMatch,
		unitsMatch:    unitsMatch,
	}
}

// patternSimilarity compares wildcard-stripped patterns: equality is 1.0,
// otherwise one minus the normalized edit distance.
func patternSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	if max == 0 {
		return 1.0
	}
	d := levenshtein.ComputeDistance(a, b)
	sim := 1.0 - float64(d)/float64(max)
	if sim < 0 {
		return 0
	}
	return sim
}

// jaccard computes keyword-set overlap. Two empty sets agree perfectly;
// exactly one empty set agrees not at all.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	setA := make(map[string]bool, len(a))
	for _, k := range a {
		setA[strings.ToLower(k)] = true
	}
	setB := make(map[string]bool, len(b))
	for _, k := range b {
		setB[strings.ToLower(k)] = true
	}
	inter := 0
	union := len(setA)
	for k := range setB {
		if setA[k] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

// contextSimilarity averages agreement over the units and object-type
// attributes that are present on at least one side.
func contextSimilarity(tp types.PointTemplate, p types.NormalizedPoint) (score float64, unitsMatch bool) {
	sum, n := 0.0, 0
	if tp.Units != "" || p.Units != "" {
		n++
		if strings.EqualFold(tp.Units, p.Units) {
			sum++
			unitsMatch = true
		}
	}
	if tp.ObjectType != "" || p.ObjectType != "" {
		n++
		if tp.ObjectType == p.ObjectType {
			sum++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), unitsMatch
}

// buildMatch assembles the TemplateMatch record with quality flags,
// per-keyword pattern detail, warnings, and recommendations.
func (m *Matcher) buildMatch(templateID string, tp types.PointTemplate, templateSig types.PointSignature, c candidate) types.TemplateMatch {
	observedKeywords := make(map[string]bool, len(c.observedSig.Keywords))
	for _, k := range c.observedSig.Keywords {
		observedKeywords[strings.ToLower(k)] = true
	}
	var patternMatches []types.PatternMatch
	if n := len(templateSig.Keywords); n > 0 {
		weight := 1.0 / float64(n)
		for i, k := range templateSig.Keywords {
			patternMatches = append(patternMatches, types.PatternMatch{
				Keyword:  k,
				Position: i,
				Weight:   weight,
				Matched:  observedKeywords[strings.ToLower(k)],
			})
		}
	}

	quality := types.MatchQuality{
		Exact:   c.score > 0.95,
		Partial: c.score > 0.70 && c.score <= 0.95,
		Fuzzy:   c.score > 0.50 && c.score <= 0.70,
		Context: c.functionMatch || c.unitsMatch || (tp.ObjectType != "" && tp.ObjectType == c.observed.ObjectType),
	}

	var warnings, recommendations []string
	if tp.Required && c.score < 0.80 {
		warnings = append(warnings, "required point matched below 0.80 confidence, verify binding")
	}
	if !c.functionMatch {
		recommendations = append(recommendations, "point function differs between template and observed point")
	}
	if (tp.Units != "" || c.observed.Units != "") && !c.unitsMatch {
		recommendations = append(recommendations, "units differ between template and observed point")
	}
	if len(c.observedSig.Keywords) < 2 {
		recommendations = append(recommendations, "observed point name carries few keywords, match may be weak")
	}

	return types.TemplateMatch{
		TemplateID:             templateID,
		TemplatePointID:        tp.TemplatePointID,
		MatchedPointObjectName: c.observed.ObjectName,
		Confidence:             c.score,
		MatchScore:             c.rawScore,
		PatternMatches:         patternMatches,
		Quality:                quality,
		Warnings:               warnings,
		Recommendations:        recommendations,
	}
}
