// Package template applies equipment templates to discovered equipment and
// aggregates historical application results into per-template effectiveness
// metrics.
package template

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bacmap/internal/config"
	"bacmap/internal/types"
)

// Applicator binds template points to observed points by facet value.
// Stateless apart from configuration; the clock is injectable for tests.
type Applicator struct {
	cfg config.ApplicationConfig
	now func() time.Time
}

// NewApplicator creates a template applicator.
func NewApplicator(cfg config.ApplicationConfig) *Applicator {
	return &Applicator{cfg: cfg, now: time.Now}
}

// ObservedPoint is one candidate point on the target equipment, carrying
// its facet values and the normalization score used as binding confidence.
type ObservedPoint struct {
	ObjectName string
	BacnetCur  string
	BacnetDis  string
	BacnetDesc string
	NavName    string
	Units      string
	Score      float64
}

// facetValue returns the observed point's value on the given facet.
func (op *ObservedPoint) facetValue(facet types.MatchingFacet) string {
	switch facet {
	case types.FacetBacnetCur:
		return op.BacnetCur
	case types.FacetBacnetDis:
		return op.BacnetDis
	case types.FacetBacnetDesc:
		return op.BacnetDesc
	}
	return ""
}

// Apply binds each template point to the observed point whose value on the
// template's matching facet agrees. Unmatched required points are still
// emitted with matched=false so callers can surface them.
func (a *Applicator) Apply(template types.EquipmentTemplate, targetEquipmentID string, points []ObservedPoint, opts types.ApplicationOptions, appliedBy string) types.TemplateApplication {
	threshold := opts.ConfidenceThreshold
	if threshold == 0 {
		threshold = a.cfg.ConfidenceThreshold
	}

	var applied []types.AppliedPoint
	matched, requiredMatched, optionalMatched := 0, 0, 0
	confidenceSum := 0.0

	for _, tp := range template.Points {
		op, ok := a.findPoint(tp, points, opts.AllowPartialMatches)
		if !ok {
			if tp.Required {
				applied = append(applied, types.AppliedPoint{
					TemplatePointID: tp.TemplatePointID,
					Matched:         false,
				})
			}
			continue
		}

		entry := types.AppliedPoint{
			PointObjectName: op.ObjectName,
			TemplatePointID: tp.TemplatePointID,
			Matched:         true,
			Confidence:      op.Score,
			NavName:         op.NavName,
			Units:           op.Units,
		}
		if entry.Confidence == 0 {
			entry.Confidence = a.cfg.DefaultConfidence
		}
		if opts.CopyNavName && tp.NavName != "" {
			entry.NavName = tp.NavName
		}
		if opts.CopyUnits && tp.Units != "" {
			entry.Units = tp.Units
		}

		applied = append(applied, entry)
		matched++
		confidenceSum += entry.Confidence
		if tp.Required {
			requiredMatched++
		} else {
			optionalMatched++
		}
	}

	avg := 0.0
	if matched > 0 {
		avg = confidenceSum / float64(matched)
	}

	results := types.MatchingResults{
		TotalPoints:           len(points),
		MatchedPoints:         matched,
		UnmatchedPoints:       len(points) - matched,
		AverageConfidence:     avg,
		RequiredPointsMatched: requiredMatched,
		OptionalPointsMatched: optionalMatched,
	}

	return types.TemplateApplication{
		ID:                uuid.NewString(),
		TemplateID:        template.ID,
		TargetEquipmentID: targetEquipmentID,
		AppliedPoints:     applied,
		MatchingOptions:   opts,
		MatchingResults:   results,
		IsSuccessful:      matched > 0 && avg >= threshold,
		AppliedAt:         a.now(),
		AppliedBy:         appliedBy,
	}
}

// findPoint locates the observed point matching the template point's facet
// value. Equality is case-insensitive; with partial matching enabled the
// first containment hit in input order is accepted.
func (a *Applicator) findPoint(tp types.PointTemplate, points []ObservedPoint, allowPartial bool) (ObservedPoint, bool) {
	want := tp.FacetValue(tp.MatchingFacet)
	if want == "" {
		return ObservedPoint{}, false
	}
	for _, op := range points {
		if strings.EqualFold(op.facetValue(tp.MatchingFacet), want) {
			return op, true
		}
	}
	if allowPartial {
		lw := strings.ToLower(want)
		for _, op := range points {
			have := strings.ToLower(op.facetValue(tp.MatchingFacet))
			if have == "" {
				continue
			}
			if strings.Contains(have, lw) || strings.Contains(lw, have) {
				return op, true
			}
		}
	}
	return ObservedPoint{}, false
}
