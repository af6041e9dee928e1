package template

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bacmap/internal/config"
	"bacmap/internal/types"
)

func testApplicator() *Applicator {
	return NewApplicator(config.DefaultConfig().Application)
}

func vavTemplate() types.EquipmentTemplate {
	return types.EquipmentTemplate{
		ID:            "tpl-vav",
		Name:          "VAV Standard",
		EquipmentType: "VAV_CONTROLLER",
		Points: []types.PointTemplate{
			{
				TemplatePointID: "tp-znt",
				Name:            "Zone Temperature",
				PointFunction:   types.FunctionSensor,
				Units:           "°F",
				Required:        true,
				NavName:         "ZoneTemp",
				BacnetDis:       "ZN-T",
				MatchingFacet:   types.FacetBacnetDis,
			},
			{
				TemplatePointID: "tp-dmp",
				Name:            "Damper Position",
				PointFunction:   types.FunctionCommand,
				Units:           "%",
				Required:        false,
				BacnetDis:       "DMP-POS",
				MatchingFacet:   types.FacetBacnetDis,
			},
		},
	}
}

func TestApplyBindsByFacet(t *testing.T) {
	a := testApplicator()
	points := []ObservedPoint{
		{ObjectName: "AV-12", BacnetDis: "zn-t", NavName: "RawZone", Units: "degF", Score: 0.93},
		{ObjectName: "AO-3", BacnetDis: "DMP-POS", Units: "%", Score: 0.85},
		{ObjectName: "AI-9", BacnetDis: "SA-T", Score: 0.80},
	}
	opts := types.ApplicationOptions{CopyNavName: true, CopyUnits: true}

	app := a.Apply(vavTemplate(), "equip-7", points, opts, "tester")

	require.Len(t, app.AppliedPoints, 2)
	znt := app.AppliedPoints[0]
	assert.Equal(t, "AV-12", znt.PointObjectName)
	assert.True(t, znt.Matched)
	assert.Equal(t, "ZoneTemp", znt.NavName)
	assert.Equal(t, "°F", znt.Units)
	assert.InDelta(t, 0.93, znt.Confidence, 0.001)

	assert.Equal(t, 3, app.MatchingResults.TotalPoints)
	assert.Equal(t, 2, app.MatchingResults.MatchedPoints)
	assert.Equal(t, 1, app.MatchingResults.RequiredPointsMatched)
	assert.Equal(t, 1, app.MatchingResults.OptionalPointsMatched)
	assert.InDelta(t, 0.89, app.MatchingResults.AverageConfidence, 0.001)
	assert.True(t, app.IsSuccessful)
	assert.Equal(t, "tester", app.AppliedBy)
	assert.NotEmpty(t, app.ID)
}

func TestApplyKeepsObservedFieldsWithoutCopyFlags(t *testing.T) {
	a := testApplicator()
	points := []ObservedPoint{{ObjectName: "AV-12", BacnetDis: "ZN-T", NavName: "RawZone", Units: "degF", Score: 0.9}}

	app := a.Apply(vavTemplate(), "equip-7", points, types.ApplicationOptions{}, "tester")
	require.NotEmpty(t, app.AppliedPoints)
	assert.Equal(t, "RawZone", app.AppliedPoints[0].NavName)
	assert.Equal(t, "degF", app.AppliedPoints[0].Units)
}

func TestApplyUnmatchedRequiredEmitted(t *testing.T) {
	a := testApplicator()
	app := a.Apply(vavTemplate(), "equip-7", []ObservedPoint{{ObjectName: "AI-1", BacnetDis: "OTHER"}}, types.ApplicationOptions{}, "tester")

	require.Len(t, app.AppliedPoints, 1)
	assert.Equal(t, "tp-znt", app.AppliedPoints[0].TemplatePointID)
	assert.False(t, app.AppliedPoints[0].Matched)
	assert.False(t, app.IsSuccessful)
	assert.Equal(t, 0.0, app.MatchingResults.AverageConfidence)
}

func TestApplyPartialMatching(t *testing.T) {
	a := testApplicator()
	points := []ObservedPoint{{ObjectName: "AV-12", BacnetDis: "VAV1 ZN-T SENSOR", Score: 0.9}}

	strict := a.Apply(vavTemplate(), "e", points, types.ApplicationOptions{}, "t")
	assert.Equal(t, 0, strict.MatchingResults.MatchedPoints)

	partial := a.Apply(vavTemplate(), "e", points, types.ApplicationOptions{AllowPartialMatches: true}, "t")
	assert.Equal(t, 1, partial.MatchingResults.MatchedPoints)
}

func TestApplyDefaultConfidence(t *testing.T) {
	a := testApplicator()
	points := []ObservedPoint{{ObjectName: "AV-12", BacnetDis: "ZN-T"}}

	app := a.Apply(vavTemplate(), "e", points, types.ApplicationOptions{}, "t")
	require.NotEmpty(t, app.AppliedPoints)
	assert.InDelta(t, 0.70, app.AppliedPoints[0].Confidence, 0.001)
}

func TestApplyIdempotentExceptTimestamps(t *testing.T) {
	a := testApplicator()
	a.now = func() time.Time { return time.Unix(1700000000, 0) }
	points := []ObservedPoint{
		{ObjectName: "AV-12", BacnetDis: "ZN-T", Score: 0.9},
		{ObjectName: "AO-3", BacnetDis: "DMP-POS", Score: 0.85},
	}
	opts := types.ApplicationOptions{CopyNavName: true}

	first := a.Apply(vavTemplate(), "e", points, opts, "t")
	second := a.Apply(vavTemplate(), "e", points, opts, "t")

	ignore := cmpopts.IgnoreFields(types.TemplateApplication{}, "ID", "AppliedAt")
	if diff := cmp.Diff(first, second, ignore); diff != "" {
		t.Fatalf("apply not idempotent (-first +second):\n%s", diff)
	}
}

func TestEffectivenessAggregation(t *testing.T) {
	tpl := vavTemplate()
	apps := []types.TemplateApplication{
		{IsSuccessful: true, MatchingResults: types.MatchingResults{MatchedPoints: 2, AverageConfidence: 0.90}},
		{IsSuccessful: true, MatchingResults: types.MatchingResults{MatchedPoints: 1, AverageConfidence: 0.80}},
		{IsSuccessful: false, MatchingResults: types.MatchingResults{MatchedPoints: 0, AverageConfidence: 0.0}},
	}

	report := Effectiveness(tpl, apps)
	assert.Equal(t, 3, report.UsageFrequency)
	assert.InDelta(t, 0.5, report.PointMatchRate, 0.001)
	assert.InDelta(t, 0.5667, report.ConfidenceScore, 0.001)
	// (2/3 successful) x 0.5 match rate x 0.5667 confidence
	assert.InDelta(t, 0.1889, report.OverallEffectiveness, 0.001)
	assert.NotEmpty(t, report.Recommendations)
}

func TestEffectivenessNoApplications(t *testing.T) {
	report := Effectiveness(vavTemplate(), nil)
	assert.Equal(t, 0, report.UsageFrequency)
	assert.Equal(t, 0.0, report.OverallEffectiveness)
	assert.NotEmpty(t, report.Recommendations)
}

func TestEffectivenessHealthyTemplateNoRecommendations(t *testing.T) {
	tpl := vavTemplate()
	apps := []types.TemplateApplication{
		{IsSuccessful: true, MatchingResults: types.MatchingResults{MatchedPoints: 2, AverageConfidence: 0.95}},
		{IsSuccessful: true, MatchingResults: types.MatchingResults{MatchedPoints: 2, AverageConfidence: 0.90}},
	}
	report := Effectiveness(tpl, apps)
	assert.Greater(t, report.OverallEffectiveness, 0.60)
	assert.Empty(t, report.Recommendations)
}
