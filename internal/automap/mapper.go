// Package automap pairs BACnet-discovered equipment against CxAlloy catalog
// equipment. Assignment is greedy over the source order: each source claims
// its best remaining target, with no back-tracking to improve the global
// sum. Predictability over optimality.
package automap

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"bacmap/internal/config"
	"bacmap/internal/types"
)

// Mapper runs auto-mapping passes. Stateless apart from configuration.
type Mapper struct {
	cfg config.AutoMapConfig
}

// NewMapper creates an auto-mapper.
func NewMapper(cfg config.AutoMapConfig) *Mapper {
	return &Mapper{cfg: cfg}
}

// scored is one candidate pairing during the greedy scan.
type scored struct {
	target     types.Equipment
	targetIdx  int
	confidence float64
	matchType  types.MatchType
	reasons    []string
}

// Map pairs each source equipment with its best remaining target. Sources
// land in exactly one of exact / suggested / unmatched; each target is
// claimed at most once. Cancellation is checked between source iterations;
// on cancel the partial result is returned.
func (m *Mapper) Map(ctx context.Context, sources, targets []types.Equipment) types.AutoMappingResult {
	start := time.Now()
	result := types.AutoMappingResult{}
	claimed := make([]bool, len(targets))

	for _, src := range sources {
		if ctx != nil && ctx.Err() != nil {
			result.UnmatchedSource = append(result.UnmatchedSource, src)
			continue
		}

		best, found := m.bestTarget(src, targets, claimed)
		switch {
		case found && best.confidence >= m.cfg.ExactThreshold:
			result.Exact = append(result.Exact, m.record(src, best))
		case found && best.confidence >= m.cfg.SuggestedThreshold:
			result.Suggested = append(result.Suggested, m.record(src, best))
		default:
			result.UnmatchedSource = append(result.UnmatchedSource, src)
			continue
		}
		claimed[best.targetIdx] = true
	}

	for i, t := range targets {
		if !claimed[i] {
			result.UnmatchedTarget = append(result.UnmatchedTarget, t)
		}
	}

	result.Stats = types.AutoMappingStats{
		TotalSources:   len(sources),
		TotalTargets:   len(targets),
		ExactCount:     len(result.Exact),
		SuggestedCount: len(result.Suggested),
		UnmatchedCount: len(result.UnmatchedSource),
		ElapsedMs:      time.Since(start).Milliseconds(),
	}
	return result
}

// record converts a scored pairing into the immutable match record.
func (m *Mapper) record(src types.Equipment, c scored) types.AutoMappingMatch {
	return types.AutoMappingMatch{
		BacnetEquipmentID:  src.ID,
		CxAlloyEquipmentID: c.target.ID,
		Confidence:         c.confidence,
		MatchType:          c.matchType,
		Reasons:            c.reasons,
	}
}

// bestTarget scans unclaimed targets for the highest-scoring pairing.
// Equal scores break lexicographically on target name.
func (m *Mapper) bestTarget(src types.Equipment, targets []types.Equipment, claimed []bool) (scored, bool) {
	var best scored
	found := false
	for i, tgt := range targets {
		if claimed[i] {
			continue
		}
		c := m.score(src, tgt)
		c.targetIdx = i
		if !found || c.confidence > best.confidence ||
			(c.confidence == best.confidence && c.target.Name < best.target.Name) {
			best = c
			found = true
		}
	}
	return best, found
}

// score computes the composite confidence for one pairing. An identical
// fully-normalized name is definitive on its own; otherwise name similarity
// carries 0.80 of the weight, with type and location contributing 0.10 each
// when both sides present them.
func (m *Mapper) score(src, tgt types.Equipment) scored {
	c := scored{target: tgt, matchType: types.MatchFuzzy}

	nameSim, exactName := nameSimilarity(src.Name, tgt.Name)
	if exactName {
		c.confidence = 1.0
		c.matchType = types.MatchExact
		c.reasons = append(c.reasons, "exact name match")
	} else {
		c.confidence = m.cfg.NameWeight * nameSim
		c.reasons = append(c.reasons, fmt.Sprintf("name similarity %.2f", nameSim))
	}

	if src.EquipmentType != "" && tgt.EquipmentType != "" {
		if compat := typeCompatibility(src.EquipmentType, tgt.EquipmentType); compat > 0 {
			if !exactName {
				c.confidence += m.cfg.TypeWeight * compat
			}
			c.matchType = types.MatchTypeAssisted
			c.reasons = append(c.reasons, fmt.Sprintf("compatible equipment types (%s ~ %s)",
				normalizeType(src.EquipmentType), normalizeType(tgt.EquipmentType)))
		}
	}

	if src.Location != "" && tgt.Location != "" {
		if loc := locationSimilarity(src.Location, tgt.Location); loc > 0 {
			if !exactName {
				c.confidence += m.cfg.LocationWeight * loc
			}
			c.reasons = append(c.reasons, "matching location")
		}
	}

	if c.confidence > 1.0 {
		c.confidence = 1.0
	}
	return c
}

// =============================================================================
// NAME SIMILARITY
// =============================================================================

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	separators = regexp.MustCompile(`[-_.]+`)

	// noiseWords are equipment-type words that field naming appends to the
	// identifier proper ("VAV-1 Terminal" names the same box as "VAV-1").
	noiseWords = map[string]bool{
		"terminal": true, "controller": true, "unit": true, "box": true,
		"ctrl": true, "ctlr": true,
	}
)

// fullNormalize lowercases and strips everything but letters and digits.
func fullNormalize(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "")
}

// softNormalize lowercases, strips separator punctuation only, and drops
// equipment-type noise words. Digits are preserved.
func softNormalize(name string) string {
	s := separators.ReplaceAllString(strings.ToLower(name), "")
	var kept []string
	for _, w := range strings.Fields(s) {
		if !noiseWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, "")
}

// nameSimilarity computes tiered name similarity. exact reports tier-1
// identity, which is definitive for the composite score.
func nameSimilarity(a, b string) (sim float64, exact bool) {
	fa, fb := fullNormalize(a), fullNormalize(b)
	if fa != "" && fa == fb {
		return 1.0, true
	}

	sa, sb := softNormalize(a), softNormalize(b)
	if sa != "" && sa == sb {
		return 0.95, false
	}
	if sa != "" && sb != "" && (strings.Contains(sa, sb) || strings.Contains(sb, sa)) {
		shorter, longer := len(sa), len(sb)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return 0.80 * float64(shorter) / float64(longer), false
	}

	max := len(fa)
	if len(fb) > max {
		max = len(fb)
	}
	if max == 0 {
		return 0, false
	}
	d := levenshtein.ComputeDistance(fa, fb)
	sim = 1.0 - float64(d)/float64(max)
	if sim < 0 {
		sim = 0
	}
	return sim, false
}

// =============================================================================
// TYPE COMPATIBILITY
// =============================================================================

// typeVariants maps equipment-type spellings onto canonical families.
var typeVariants = map[string]string{
	"ahu":               "ahu",
	"ahu controller":    "ahu",
	"air handler unit":  "ahu",
	"air handling unit": "ahu",
	"air handler":       "ahu",

	"vav":                 "vav",
	"vav controller":      "vav",
	"vav terminal":        "vav",
	"vav terminal unit":   "vav",
	"vav box":             "vav",
	"variable air volume": "vav",

	"rtu":           "rtu",
	"rooftop unit":  "rtu",
	"roof top unit": "rtu",

	"fcu":           "fcu",
	"fan coil":      "fcu",
	"fan coil unit": "fcu",

	"chiller": "chiller",
	"chlr":    "chiller",

	"boiler": "boiler",
	"blr":    "boiler",

	"pump": "pump",
	"pmp":  "pump",

	"ef":          "exhaust fan",
	"exhaust fan": "exhaust fan",

	"ct":            "cooling tower",
	"cooling tower": "cooling tower",
}

var typeSeparators = regexp.MustCompile(`[-_./]+`)

// normalizeType lowercases a type string and collapses separators to single
// spaces.
func normalizeType(t string) string {
	s := typeSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(t)), " ")
	return strings.Join(strings.Fields(s), " ")
}

// typeCompatibility scores two equipment-type strings: equal 1.00, same
// canonical family 0.90, substring containment 0.60, otherwise 0.
func typeCompatibility(a, b string) float64 {
	na, nb := normalizeType(a), normalizeType(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.00
	}
	ca, aOK := typeVariants[na]
	cb, bOK := typeVariants[nb]
	if aOK && bOK && ca == cb {
		return 0.90
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.60
	}
	return 0
}

// locationSimilarity scores two free-form location strings.
func locationSimilarity(a, b string) float64 {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return 0
	}
	if la == lb {
		return 1.0
	}
	if strings.Contains(la, lb) || strings.Contains(lb, la) {
		return 0.5
	}
	return 0
}
