package automap

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bacmap/internal/config"
	"bacmap/internal/types"
)

func testMapper() *Mapper {
	return NewMapper(config.DefaultConfig().AutoMap)
}

func TestMapExactNameWithCompatibleType(t *testing.T) {
	m := testMapper()
	sources := []types.Equipment{{ID: "b1", Name: "VAV-101", EquipmentType: "VAV_CONTROLLER"}}
	targets := []types.Equipment{{ID: "c1", Name: "VAV-101", EquipmentType: "VAV Terminal"}}

	result := m.Map(context.Background(), sources, targets)
	require.Len(t, result.Exact, 1)
	assert.Empty(t, result.Suggested)
	assert.Empty(t, result.UnmatchedSource)
	assert.Empty(t, result.UnmatchedTarget)

	got := result.Exact[0]
	assert.Equal(t, "b1", got.BacnetEquipmentID)
	assert.Equal(t, "c1", got.CxAlloyEquipmentID)
	assert.Equal(t, 1.00, got.Confidence)
	assert.Equal(t, types.MatchTypeAssisted, got.MatchType)
}

func TestMapSuggestedOnNoiseWordSuffix(t *testing.T) {
	m := testMapper()
	sources := []types.Equipment{{ID: "b1", Name: "VAV_1", EquipmentType: "VAV_CONTROLLER"}}
	targets := []types.Equipment{{ID: "c1", Name: "VAV-1 Terminal", EquipmentType: "VAV Terminal"}}

	result := m.Map(context.Background(), sources, targets)
	require.Len(t, result.Suggested, 1)
	assert.Empty(t, result.Exact)

	got := result.Suggested[0]
	assert.Greater(t, got.Confidence, 0.60)
	assert.Less(t, got.Confidence, 0.95)
	assert.Equal(t, types.MatchTypeAssisted, got.MatchType)
}

func TestMapUnrelatedStaysUnmatched(t *testing.T) {
	m := testMapper()
	sources := []types.Equipment{{ID: "b1", Name: "CHW-PUMP-3"}}
	targets := []types.Equipment{{ID: "c1", Name: "RTU-7 Rooftop"}}

	result := m.Map(context.Background(), sources, targets)
	assert.Empty(t, result.Exact)
	assert.Empty(t, result.Suggested)
	require.Len(t, result.UnmatchedSource, 1)
	require.Len(t, result.UnmatchedTarget, 1)
}

func TestMapAssignmentUniqueness(t *testing.T) {
	m := testMapper()
	var sources, targets []types.Equipment
	for i := 1; i <= 6; i++ {
		sources = append(sources, types.Equipment{ID: fmt.Sprintf("b%d", i), Name: fmt.Sprintf("VAV-%d", i), EquipmentType: "VAV"})
		targets = append(targets, types.Equipment{ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("VAV-%d", i), EquipmentType: "VAV Terminal"})
	}
	// Two sources with the same name compete for one target.
	sources = append(sources, types.Equipment{ID: "dup", Name: "VAV-1", EquipmentType: "VAV"})

	result := m.Map(context.Background(), sources, targets)

	seenSources := map[string]int{}
	seenTargets := map[string]int{}
	for _, match := range append(append([]types.AutoMappingMatch{}, result.Exact...), result.Suggested...) {
		seenSources[match.BacnetEquipmentID]++
		seenTargets[match.CxAlloyEquipmentID]++
	}
	for _, src := range result.UnmatchedSource {
		seenSources[src.ID]++
	}
	for id, n := range seenSources {
		assert.Equal(t, 1, n, "source %s appears %d times", id, n)
	}
	for id, n := range seenTargets {
		assert.Equal(t, 1, n, "target %s claimed %d times", id, n)
	}
	assert.Len(t, seenSources, len(sources))
}

func TestMapThresholdCoherence(t *testing.T) {
	m := testMapper()
	sources := []types.Equipment{
		{ID: "b1", Name: "AHU-1", EquipmentType: "AHU"},
		{ID: "b2", Name: "VAV_2", EquipmentType: "VAV_CONTROLLER"},
		{ID: "b3", Name: "Boiler B-1"},
		{ID: "b4", Name: "Unrelated Thing"},
	}
	targets := []types.Equipment{
		{ID: "c1", Name: "AHU-1", EquipmentType: "Air Handling Unit"},
		{ID: "c2", Name: "VAV-2 Terminal", EquipmentType: "VAV Terminal"},
		{ID: "c3", Name: "B-1 Boiler"},
		{ID: "c4", Name: "Chiller CH-1"},
	}

	result := m.Map(context.Background(), sources, targets)
	for _, match := range result.Exact {
		assert.GreaterOrEqual(t, match.Confidence, 0.95)
	}
	for _, match := range result.Suggested {
		assert.GreaterOrEqual(t, match.Confidence, 0.60)
		assert.Less(t, match.Confidence, 0.95)
	}
	assert.Equal(t, len(sources), len(result.Exact)+len(result.Suggested)+len(result.UnmatchedSource))
	assert.Equal(t, len(result.Exact), result.Stats.ExactCount)
	assert.Equal(t, len(result.Suggested), result.Stats.SuggestedCount)
}

func TestMapGreedyIsOrderSensitive(t *testing.T) {
	m := testMapper()
	a := types.Equipment{ID: "a", Name: "VAV-1"}
	b := types.Equipment{ID: "b", Name: "VAV-1"}
	target := []types.Equipment{{ID: "t", Name: "VAV-1"}}

	first := m.Map(context.Background(), []types.Equipment{a, b}, target)
	require.Len(t, first.Exact, 1)
	assert.Equal(t, "a", first.Exact[0].BacnetEquipmentID)

	second := m.Map(context.Background(), []types.Equipment{b, a}, target)
	require.Len(t, second.Exact, 1)
	assert.Equal(t, "b", second.Exact[0].BacnetEquipmentID)
}

func TestMapCancelledContext(t *testing.T) {
	m := testMapper()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := m.Map(ctx, []types.Equipment{{ID: "b1", Name: "VAV-1"}}, []types.Equipment{{ID: "c1", Name: "VAV-1"}})
	assert.Empty(t, result.Exact)
	require.Len(t, result.UnmatchedSource, 1)
}

func TestNameSimilarityTiers(t *testing.T) {
	sim, exact := nameSimilarity("VAV-101", "vav101")
	assert.True(t, exact)
	assert.Equal(t, 1.0, sim)

	sim, exact = nameSimilarity("VAV_1", "VAV-1 Terminal")
	assert.False(t, exact)
	assert.InDelta(t, 0.95, sim, 0.001)

	sim, _ = nameSimilarity("AHU-1 East Wing", "AHU-1")
	assert.Greater(t, sim, 0.0)
	assert.Less(t, sim, 0.95)
}

func TestTypeCompatibility(t *testing.T) {
	assert.Equal(t, 1.00, typeCompatibility("VAV Terminal", "vav_terminal"))
	assert.Equal(t, 0.90, typeCompatibility("VAV_CONTROLLER", "VAV Terminal"))
	assert.Equal(t, 0.90, typeCompatibility("AHU", "Air Handling Unit"))
	assert.Equal(t, 0.60, typeCompatibility("chilled water pump", "pump"))
	assert.Equal(t, 0.0, typeCompatibility("boiler", "chiller"))
	assert.Equal(t, 0.0, typeCompatibility("", "vav"))
}
