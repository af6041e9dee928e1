package normalize

import (
	"fmt"
	"strings"

	"bacmap/internal/config"
	"bacmap/internal/dictionary"
	"bacmap/internal/types"
)

// Engine is the point normalization engine. It holds only configuration;
// the dictionary snapshot is passed per call, so concurrent calls on
// distinct inputs are safe and a hot reload never tears a call in half.
type Engine struct {
	cfg config.NormalizationConfig
}

// NewEngine creates a normalization engine.
func NewEngine(cfg config.NormalizationConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Normalize converts a raw point into a normalized catalog entry. Total:
// it never panics out; an unexpected internal failure degrades to the
// original display name with an Errors annotation.
func (e *Engine) Normalize(snap *dictionary.Snapshot, point types.RawPoint, ctx types.NormalizationContext) (np types.NormalizedPoint) {
	defer func() {
		if r := recover(); r != nil {
			np = types.NormalizedPoint{
				ObjectName:          point.ObjectName,
				OriginalName:        point.DisplayName,
				NormalizedName:      point.DisplayName,
				ExpandedDescription: point.DisplayName,
				PointFunction:       types.FunctionUnknown,
				ObjectType:          point.ObjectType,
				Units:               point.Units,
				ConfidenceLevel:     types.ConfidenceUnknown,
				Errors:              []string{fmt.Sprintf("internal defect: %v", r)},
			}
			np.AddTag(seedTag())
		}
	}()

	// Primary source: display name, falling back to the object name.
	source := strings.TrimSpace(point.DisplayName)
	if source == "" {
		source = strings.TrimSpace(point.ObjectName)
	}
	if source == "" {
		np = types.NormalizedPoint{
			ObjectName:           point.ObjectName,
			NormalizedName:       "Unknown Point",
			ExpandedDescription:  "Unknown Point",
			PointFunction:        types.FunctionUnknown,
			ObjectType:           point.ObjectType,
			ConfidenceLevel:      types.ConfidenceUnknown,
			Method:               types.SourceNone,
			RequiresManualReview: true,
		}
		np.AddTag(seedTag())
		return np
	}

	tokens := Tokenize(source)

	// Context analysis.
	units := ctx.Units
	if units == "" {
		units = point.Units
	}
	unitCat, unitKnown := UnitCategoryFor(units)

	vendor := ctx.VendorName
	vendorInferred := false
	if vendor == "" {
		if v := dictionary.InferVendor(source + " " + point.ObjectName); v != "" {
			vendor = v
			vendorInferred = true
		}
	}

	// Per-token dictionary cascade.
	results := make([]tokenResult, 0, len(tokens))
	analyses := make([]types.TokenAnalysis, 0, len(tokens))
	var rules []string
	for _, tok := range tokens {
		r := e.analyzeToken(snap, tok, ctx.EquipmentType, vendor, unitCat, unitKnown)
		results = append(results, r)
		analyses = append(analyses, r.analysis)
		a := r.analysis
		if a.Source != types.SourceNone && a.Expansion != "" && !strings.EqualFold(a.Expansion, a.OriginalToken) {
			rules = append(rules, fmt.Sprintf("%s:%s=%s", a.Source, a.OriginalToken, a.Expansion))
		}
	}

	fn := determineFunction(point, tokens)

	name := e.baseName(analyses)
	if name == "" {
		name = titleCase(strings.ToLower(source))
	}

	desc := e.expandedDescription(name, fn, point)

	np = types.NormalizedPoint{
		ObjectName:          point.ObjectName,
		OriginalName:        source,
		NormalizedName:      name,
		ExpandedDescription: desc,
		PointFunction:       fn,
		ObjectType:          point.ObjectType,
		Units:               units,
		Method:              dominantSource(analyses),
		AppliedRules:        rules,
	}

	e.collectTags(&np, results, fn, unitCat, unitKnown)
	e.collectAcronyms(&np, analyses)

	score := e.score(analyses, ctx.EquipmentType != "", unitKnown, vendor != "" || vendorInferred)
	np.ConfidenceScore = score
	np.ConfidenceLevel = types.LevelForScore(score)
	np.RequiresManualReview = score < e.cfg.ManualReviewThreshold
	np.HasUnitNormalization = unitKnown
	np.HasContextInference = ctx.EquipmentType != "" || vendorInferred

	return np
}

// seedTag is the entity tag every normalized point carries.
func seedTag() types.Tag {
	return types.Tag{Name: "point", Category: types.TagEntity, Confidence: 1.0, Source: types.TagExplicit}
}

// tokenResult pairs a token analysis with the dictionary tags of the entry
// that resolved it, if any.
type tokenResult struct {
	analysis types.TokenAnalysis
	tags     []string
}

// analyzeToken runs the dictionary cascade for one token. The first hit
// wins; later steps are not consulted.
func (e *Engine) analyzeToken(snap *dictionary.Snapshot, token, equipmentType, vendor string, unitCat UnitCategory, unitKnown bool) tokenResult {
	if equipmentType != "" {
		if entry, ok := snap.Equipment(equipmentType, token); ok {
			return tokenResult{analysis: types.TokenAnalysis{
				OriginalToken:   token,
				NormalizedToken: entry.Expansion,
				Confidence:      e.cfg.EquipmentPriorityBase,
				Source:          types.SourceEquipment,
				MatchedAcronym:  entry.Acronym,
				Expansion:       entry.Expansion,
			}, tags: entry.Tags}
		}
	}
	if vendor != "" {
		if entry, ok := snap.Vendor(vendor, token); ok {
			return tokenResult{analysis: types.TokenAnalysis{
				OriginalToken:   token,
				NormalizedToken: entry.Expansion,
				Confidence:      e.cfg.VendorPriorityBase,
				Source:          types.SourceVendor,
				MatchedAcronym:  entry.Acronym,
				Expansion:       entry.Expansion,
			}, tags: entry.Tags}
		}
	}
	if entry, ok := snap.General(token); ok {
		return tokenResult{analysis: types.TokenAnalysis{
			OriginalToken:   token,
			NormalizedToken: entry.Expansion,
			Confidence:      clamp01(float64(entry.Priority) * e.cfg.GeneralPriorityMultiplier),
			Source:          types.SourceGeneral,
			MatchedAcronym:  entry.Acronym,
			Expansion:       entry.Expansion,
		}, tags: entry.Tags}
	}
	if unitKnown {
		if exp, conf := inferFromUnits(token, unitCat); conf >= 0.80 {
			// Only the first-letter-consistent reading is trusted enough to
			// rewrite an otherwise unknown token.
			return tokenResult{analysis: types.TokenAnalysis{
				OriginalToken:   token,
				NormalizedToken: exp,
				Confidence:      conf,
				Source:          types.SourceUnit,
				Expansion:       exp,
			}}
		}
	}
	if exp, conf, ok := inferFromPattern(token); ok {
		return tokenResult{analysis: types.TokenAnalysis{
			OriginalToken:   token,
			NormalizedToken: exp,
			Confidence:      conf,
			Source:          types.SourcePattern,
			Expansion:       exp,
		}}
	}
	return tokenResult{analysis: types.TokenAnalysis{
		OriginalToken:   token,
		NormalizedToken: titleWord(token),
		Confidence:      0.10,
		Source:          types.SourceNone,
	}}
}

// determineFunction picks the point function. The object type is
// authoritative; token evidence refines inputs and value objects.
func determineFunction(point types.RawPoint, tokens []string) types.PointFunction {
	hasSetpoint := anyToken(tokens, isSetpointMarker)
	hasCommand := anyToken(tokens, isCommandMarker)
	hasStatus := anyToken(tokens, isStatusMarker)

	ot := point.ObjectType
	switch {
	case ot.IsOutput():
		return types.FunctionCommand
	case ot.IsInput():
		if hasStatus && (ot == types.ObjectBinaryInput || ot == types.ObjectMultistateInput) {
			return types.FunctionStatus
		}
		return types.FunctionSensor
	case ot.IsValue():
		if hasSetpoint {
			return types.FunctionSetpoint
		}
		if point.IsWritable || point.IsCommand {
			return types.FunctionCommand
		}
		return types.FunctionUnknown
	}

	// No object type: explicit token evidence wins, strongest first.
	switch {
	case hasSetpoint:
		return types.FunctionSetpoint
	case hasCommand:
		return types.FunctionCommand
	case hasStatus:
		return types.FunctionStatus
	}
	return types.FunctionSensor
}

func anyToken(tokens []string, pred func(string) bool) bool {
	for _, t := range tokens {
		if pred(t) {
			return true
		}
	}
	return false
}

// baseName joins expansions of non-numeric, non-function-suffix tokens
// into the Title-Case normalized name.
func (e *Engine) baseName(analyses []types.TokenAnalysis) string {
	var parts []string
	for _, a := range analyses {
		if isNumeric(a.OriginalToken) || isFunctionSuffixToken(a.OriginalToken) {
			continue
		}
		word := a.NormalizedToken
		if word == "" {
			word = a.OriginalToken
		}
		parts = append(parts, word)
	}
	return titleCase(strings.Join(parts, " "))
}

// expandedDescription appends the function suffix when meaningful: the
// Sensor suffix only applies when the object type actually is an input.
func (e *Engine) expandedDescription(name string, fn types.PointFunction, point types.RawPoint) string {
	if e.cfg.PreferContractorDescription && len(point.Description) > len(name) {
		return point.Description
	}
	suffix := fn.Suffix()
	if fn == types.FunctionSensor && !point.ObjectType.IsInput() {
		suffix = ""
	}
	if suffix != "" && strings.HasSuffix(name, suffix) {
		suffix = ""
	}
	return name + suffix
}

// collectTags seeds the entity tag, then adds dictionary-suggested tags,
// unit-implied measurement tags, and the single function tag.
func (e *Engine) collectTags(np *types.NormalizedPoint, results []tokenResult, fn types.PointFunction, unitCat UnitCategory, unitKnown bool) {
	np.AddTag(seedTag())

	for _, r := range results {
		a := r.analysis
		if len(r.tags) == 0 {
			// Direct substance/measurement words still tag even without a
			// dictionary hit (e.g. a literal "water" token).
			if cat := dictionary.TagCategoryFor(strings.ToLower(a.OriginalToken)); cat == types.TagSubstance || cat == types.TagMeasurement {
				np.AddTag(types.Tag{Name: strings.ToLower(a.OriginalToken), Category: cat, Confidence: a.Confidence, Source: types.TagInferred})
			}
			continue
		}
		for _, tagName := range r.tags {
			np.AddTag(types.Tag{
				Name:       tagName,
				Category:   dictionary.TagCategoryFor(tagName),
				Confidence: a.Confidence,
				Source:     types.TagExplicit,
			})
		}
	}

	if unitKnown && unitCat.Tag != "" {
		np.AddTag(types.Tag{Name: unitCat.Tag, Category: types.TagMeasurement, Confidence: 0.80, Source: types.TagInferred})
		if unitCat.Substance != "" {
			np.AddTag(types.Tag{Name: unitCat.Substance, Category: types.TagSubstance, Confidence: 0.60, Source: types.TagInferred})
		}
	}

	if tag := fn.HaystackTag(); tag != "" {
		np.AddTag(types.Tag{Name: tag, Category: types.TagFunction, Confidence: 0.90, Source: types.TagInferred})
	}
}

// collectAcronyms records expansions for audit display.
func (e *Engine) collectAcronyms(np *types.NormalizedPoint, analyses []types.TokenAnalysis) {
	for _, a := range analyses {
		switch a.Source {
		case types.SourceEquipment, types.SourceVendor, types.SourceGeneral:
			if !strings.EqualFold(a.OriginalToken, a.Expansion) {
				np.ExpandedAcronyms = append(np.ExpandedAcronyms, types.AcronymExpansion{
					Original:   a.OriginalToken,
					Expanded:   a.Expansion,
					Confidence: a.Confidence,
				})
			}
		}
	}
	np.HasAcronymExpansion = len(np.ExpandedAcronyms) > 0
}

// score computes the length-weighted mean of token confidences plus
// context bonuses, clamped to [0,1]. Longer tokens carry more signal.
func (e *Engine) score(analyses []types.TokenAnalysis, hasEquipment, hasUnits, hasVendor bool) float64 {
	var weighted, total float64
	for _, a := range analyses {
		w := float64(len(a.OriginalToken))
		weighted += w * a.Confidence
		total += w
	}
	score := 0.0
	if total > 0 {
		score = weighted / total
	}
	if hasEquipment {
		score += e.cfg.EquipmentContextBonus
	}
	if hasUnits {
		score += e.cfg.UnitContextBonus
	}
	if hasVendor {
		score += e.cfg.VendorContextBonus
	}
	return clamp01(score)
}

// dominantSource picks the cascade step that contributed the most token
// weight, for the Method field.
func dominantSource(analyses []types.TokenAnalysis) types.AnalysisSource {
	weights := make(map[types.AnalysisSource]float64)
	for _, a := range analyses {
		weights[a.Source] += float64(len(a.OriginalToken))
	}
	best := types.SourceNone
	bestW := 0.0
	// Fixed iteration order keeps ties deterministic.
	for _, s := range []types.AnalysisSource{types.SourceEquipment, types.SourceVendor, types.SourceGeneral, types.SourceUnit, types.SourcePattern} {
		if weights[s] > bestW {
			best = s
			bestW = weights[s]
		}
	}
	return best
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
