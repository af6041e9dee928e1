package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bacmap/internal/config"
	"bacmap/internal/signature"
	"bacmap/internal/types"
)

func testMatcher() *Matcher {
	cfg := config.DefaultConfig()
	return NewMatcher(cfg.Matching, signature.NewBuilder(cfg.Signature))
}

func TestMatchZoneTemperature(t *testing.T) {
	m := testMatcher()
	template := types.EquipmentTemplate{
		ID: "tpl-vav",
		Points: []types.PointTemplate{{
			TemplatePointID: "tp-znt",
			Name:            "Zone Temperature",
			PointFunction:   types.FunctionSensor,
			Units:           "°F",
			BacnetDis:       "ZN-T",
			MatchingFacet:   types.FacetBacnetDis,
			Required:        true,
		}},
	}
	observed := []types.NormalizedPoint{{
		ObjectName:      "AV-12",
		NormalizedName:  "Zone Temperature",
		PointFunction:   types.FunctionSetpoint,
		ObjectType:      types.ObjectAnalogValue,
		Units:           "°F",
		ConfidenceLevel: types.ConfidenceHigh,
	}}

	matches := m.Match(observed, template)
	require.Len(t, matches, 1)

	got := matches[0]
	assert.Equal(t, "tpl-vav", got.TemplateID)
	assert.Equal(t, "tp-znt", got.TemplatePointID)
	assert.Equal(t, "AV-12", got.MatchedPointObjectName)
	assert.GreaterOrEqual(t, got.Confidence, 0.70)
	assert.True(t, got.Quality.Context)

	// Function disagreement produces a recommendation, not a rejection.
	assert.NotEmpty(t, got.Recommendations)
}

func TestMatchEmptyInputs(t *testing.T) {
	m := testMatcher()
	assert.Nil(t, m.Match(nil, types.EquipmentTemplate{Points: []types.PointTemplate{{Name: "X"}}}))
	assert.Nil(t, m.Match([]types.NormalizedPoint{{NormalizedName: "X"}}, types.EquipmentTemplate{}))
}

func TestMatchBelowThresholdDropped(t *testing.T) {
	m := testMatcher()
	template := types.EquipmentTemplate{
		ID: "tpl",
		Points: []types.PointTemplate{{
			TemplatePointID: "tp-1",
			Name:            "Supply Air Temperature",
			PointFunction:   types.FunctionSensor,
		}},
	}
	observed := []types.NormalizedPoint{{
		ObjectName:     "BO-9",
		NormalizedName: "Exhaust Fan Run",
		PointFunction:  types.FunctionCommand,
	}}
	assert.Empty(t, m.Match(observed, template))
}

func TestMatchPrefersFunctionAgreementOnTie(t *testing.T) {
	m := testMatcher()
	template := types.EquipmentTemplate{
		ID: "tpl",
		Points: []types.PointTemplate{{
			TemplatePointID: "tp-1",
			Name:            "Damper Position",
			PointFunction:   types.FunctionCommand,
			Units:           "%",
		}},
	}
	observed := []types.NormalizedPoint{
		{
			ObjectName:      "AI-2",
			NormalizedName:  "Damper Position",
			PointFunction:   types.FunctionSensor,
			Units:           "%",
			ConfidenceLevel: types.ConfidenceHigh,
		},
		{
			ObjectName:      "AO-1",
			NormalizedName:  "Damper Position",
			PointFunction:   types.FunctionCommand,
			Units:           "%",
			ConfidenceLevel: types.ConfidenceHigh,
		},
	}
	matches := m.Match(observed, template)
	require.Len(t, matches, 1)
	assert.Equal(t, "AO-1", matches[0].MatchedPointObjectName)
	assert.True(t, matches[0].Quality.Exact)
}

func TestMatchRequiredBelowPointEightWarns(t *testing.T) {
	m := testMatcher()
	template := types.EquipmentTemplate{
		ID: "tpl",
		Points: []types.PointTemplate{{
			TemplatePointID: "tp-1",
			Name:            "Zone Temperature",
			PointFunction:   types.FunctionSensor,
			Required:        true,
		}},
	}
	observed := []types.NormalizedPoint{{
		ObjectName:     "AI-5",
		NormalizedName: "Zone Humidity",
		PointFunction:  types.FunctionSensor,
	}}
	matches := m.Match(observed, template)
	if len(matches) == 1 {
		assert.Less(t, matches[0].Confidence, 0.80)
		assert.NotEmpty(t, matches[0].Warnings)
	}
}

func TestPatternSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, patternSimilarity("TEMPZONE", "TEMPZONE"))
	assert.Equal(t, 1.0, patternSimilarity("", ""))
	assert.Equal(t, 0.0, patternSimilarity("ABCD", "WXYZ"))
	assert.InDelta(t, 0.75, patternSimilarity("TEMP", "TEMQ"), 0.001)
}

func TestJaccard(t *testing.T) {
	assert.Equal(t, 1.0, jaccard(nil, nil))
	assert.Equal(t, 0.0, jaccard([]string{"temp"}, nil))
	assert.Equal(t, 0.0, jaccard(nil, []string{"temp"}))
	assert.Equal(t, 1.0, jaccard([]string{"temp", "zone"}, []string{"ZONE", "TEMP"}))
	assert.InDelta(t, 1.0/3.0, jaccard([]string{"temp", "zone"}, []string{"temp", "room"}), 0.001)
}

func TestMatchResultsSortedAndTruncated(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Matching.MaxResults = 1
	m := NewMatcher(cfg.Matching, signature.NewBuilder(cfg.Signature))

	template := types.EquipmentTemplate{
		ID: "tpl",
		Points: []types.PointTemplate{
			{TemplatePointID: "tp-1", Name: "Zone Temperature", PointFunction: types.FunctionSensor, Units: "°F"},
			{TemplatePointID: "tp-2", Name: "Damper Position", PointFunction: types.FunctionCommand, Units: "%"},
		},
	}
	observed := []types.NormalizedPoint{
		{ObjectName: "AI-1", NormalizedName: "Zone Temperature", PointFunction: types.FunctionSensor, Units: "°F", ConfidenceLevel: types.ConfidenceHigh},
		{ObjectName: "AO-1", NormalizedName: "Damper Position", PointFunction: types.FunctionCommand, Units: "%", ConfidenceLevel: types.ConfidenceHigh},
	}
	matches := m.Match(observed, template)
	require.Len(t, matches, 1)
}
