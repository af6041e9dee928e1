// Package signature derives wildcard keyword patterns from normalized point
// names. Signatures are the matching keys the template matcher scores
// against; they are derived on demand and cached by the catalog layer keyed
// on (object name, dictionary version).
package signature

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"bacmap/internal/config"
	"bacmap/internal/types"
)

// Builder derives point signatures. Stateless apart from configuration.
type Builder struct {
	cfg config.SignatureConfig
}

// NewBuilder creates a signature builder.
func NewBuilder(cfg config.SignatureConfig) *Builder {
	return &Builder{cfg: cfg}
}

// stopWords are dropped outright during keyword extraction.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "to": true,
	"in": true, "on": true, "at": true, "and": true, "or": true,
	"for": true, "unit": true, "point": true,
}

// keywordClass orders keywords by what they say about the point.
// Measurement and function indicators carry the most matching signal.
type keywordClass int

const (
	classMeasurement keywordClass = iota
	classFunction
	classEquipment
	classLocation
	classOther
)

// canonicalKeyword maps a token onto the canonical matching vocabulary.
type canonicalKeyword struct {
	re      *regexp.Regexp
	keyword string
	class   keywordClass
}

var canonicalKeywords = []canonicalKeyword{
	{regexp.MustCompile(`^(temp|tmp|temperature)$`), "temperature", classMeasurement},
	{regexp.MustCompile(`^(press|prs|pressure)$`), "pressure", classMeasurement},
	{regexp.MustCompile(`^(flow|airflow|cfm)$`), "flow", classMeasurement},
	{regexp.MustCompile(`^(humidity|rh)$`), "humidity", classMeasurement},
	{regexp.MustCompile(`^(pos|position)$`), "position", classMeasurement},
	{regexp.MustCompile(`^(lvl|level)$`), "level", classMeasurement},
	{regexp.MustCompile(`^(sp|setpt|stpt|setpoint)$`), "setpoint", classFunction},
	{regexp.MustCompile(`^(st|stat|sts|status)$`), "status", classFunction},
	{regexp.MustCompile(`^(cmd|cmmd|command)$`), "command", classFunction},
	{regexp.MustCompile(`^(sen|sensor)$`), "sensor", classFunction},
	{regexp.MustCompile(`^(dmp|dpr|damper)$`), "damper", classEquipment},
	{regexp.MustCompile(`^(vlv|valve)$`), "valve", classEquipment},
	{regexp.MustCompile(`^fan$`), "fan", classEquipment},
	{regexp.MustCompile(`^(rm|room)$`), "room", classLocation},
	{regexp.MustCompile(`^supply$`), "supply", classLocation},
	{regexp.MustCompile(`^return$`), "return", classLocation},
	{regexp.MustCompile(`^exhaust$`), "exhaust", classLocation},
	{regexp.MustCompile(`^zone$`), "zone", classLocation},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]+`)

// extracted is one keyword with its importance class, pre-sort.
type extracted struct {
	keyword   string
	class     keywordClass
	canonical bool
}

// Build derives the signature of a normalized point. Deterministic; an
// empty name yields the *UNKNOWN* pattern.
func (b *Builder) Build(np types.NormalizedPoint) types.PointSignature {
	keywords := b.extract(np.NormalizedName)

	// Stable sort by importance class; original order breaks ties.
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].class < keywords[j].class
	})
	if max := b.cfg.MaxWildcards; max > 0 && len(keywords) > max {
		keywords = keywords[:max]
	}

	names := make([]string, len(keywords))
	technical := 0
	for i, k := range keywords {
		names[i] = k.keyword
		if k.canonical {
			technical++
		}
	}

	pattern := "*UNKNOWN*"
	if len(names) > 0 {
		upper := make([]string, len(names))
		for i, n := range names {
			upper[i] = strings.ToUpper(n)
		}
		pattern = fmt.Sprintf("*%s*", strings.Join(upper, "*"))
	}

	return types.PointSignature{
		Pattern:           pattern,
		NormalizedPattern: strings.ReplaceAll(pattern, "*", ""),
		Keywords:          names,
		Confidence:        b.confidence(len(names), np),
		Specificity:       b.specificity(len(names), technical, pattern),
		PointFunction:     np.PointFunction,
		ObjectType:        np.ObjectType,
		Units:             np.Units,
		ObjectName:        np.ObjectName,
	}
}

// extract lowercases, strips punctuation, and maps tokens onto the
// canonical matching vocabulary.
func (b *Builder) extract(name string) []extracted {
	clean := nonAlnum.ReplaceAllString(strings.ToLower(name), " ")
	var out []extracted
	for _, tok := range strings.Fields(clean) {
		if stopWords[tok] || len(tok) < b.cfg.MinKeywordLength {
			continue
		}
		if kw, ok := canonical(tok); ok {
			out = append(out, kw)
			continue
		}
		// Unmapped tokens pass through only when long enough to carry
		// meaning on their own.
		if len(tok) >= 3 {
			out = append(out, extracted{keyword: tok, class: classOther})
		}
	}
	return out
}

func canonical(tok string) (extracted, bool) {
	for _, c := range canonicalKeywords {
		if c.re.MatchString(tok) {
			return extracted{keyword: c.keyword, class: c.class, canonical: true}, true
		}
	}
	return extracted{}, false
}

// confidence scores how much matching signal the signature carries.
func (b *Builder) confidence(keywords int, np types.NormalizedPoint) float64 {
	score := 0.50
	kw := float64(keywords) / 4.0
	if kw > 1 {
		kw = 1
	}
	score += kw * 0.30
	if np.PointFunction != types.FunctionUnknown {
		score += 0.20
	}
	if np.Units != "" {
		score += 0.10
	}
	if np.ObjectType != "" {
		score += 0.10
	}
	switch np.ConfidenceLevel {
	case types.ConfidenceHigh:
		score += 0.15
	case types.ConfidenceMedium:
		score += 0.10
	}
	return clamp01(score)
}

// specificity scores how narrowly the pattern selects.
func (b *Builder) specificity(keywords, technical int, pattern string) float64 {
	score := 0.50
	kw := float64(keywords) / 5.0
	if kw > 0.30 {
		kw = 0.30
	}
	score += kw
	score += 0.10 * float64(technical)
	wildcards := strings.Count(pattern, "*")
	if wildcards < 5 {
		score += 0.05 * float64(5-wildcards)
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
