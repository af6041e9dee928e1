package catalog

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"bacmap/internal/config"
	"bacmap/internal/dictionary"
	"bacmap/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	provider, err := dictionary.NewProvider("", nil)
	require.NoError(t, err)
	return New(config.DefaultConfig(), provider)
}

func sampleDevice() Device {
	return Device{
		DeviceID:      "dev-1",
		EquipmentType: "VAV_CONTROLLER",
		Points: []types.RawPoint{
			{ObjectName: "AI39", ObjectType: types.ObjectAnalogInput, DisplayName: "ROOM TEMP 4", Units: "°F"},
			{ObjectName: "AO0", ObjectType: types.ObjectAnalogOutput, DisplayName: "DMP POS", Units: "%"},
			{ObjectName: "AV12", ObjectType: types.ObjectAnalogValue, DisplayName: "ZN-T SP", Units: "°F", IsWritable: true},
			{ObjectName: "BI3", ObjectType: types.ObjectBinaryInput, DisplayName: "XQZ BRF"},
		},
	}
}

func TestProcessDevice(t *testing.T) {
	c := newTestCatalog(t)

	res, err := c.ProcessDevice(context.Background(), sampleDevice())
	require.NoError(t, err)
	require.Len(t, res.Points, 4)

	// Output order matches input order regardless of worker scheduling.
	assert.Equal(t, "AI39", res.Points[0].Normalized.ObjectName)
	assert.Equal(t, "AO0", res.Points[1].Normalized.ObjectName)
	assert.Equal(t, "AV12", res.Points[2].Normalized.ObjectName)
	assert.Equal(t, "BI3", res.Points[3].Normalized.ObjectName)

	first := res.Points[0]
	assert.Equal(t, "Room Temperature", first.Normalized.NormalizedName)
	assert.Contains(t, first.Signature.Pattern, "TEMPERATURE")
	assert.Equal(t, "AI39", first.Signature.ObjectName)

	sum := res.Summary
	assert.Equal(t, 4, sum.TotalPoints)
	assert.Equal(t, 1, sum.NeedsReview)
	assert.Greater(t, sum.AverageConfidence, 0.0)
	assert.Equal(t, 2, sum.ByFunction[types.FunctionSensor])
	assert.Equal(t, 1, sum.ByFunction[types.FunctionSetpoint])
}

func TestProcessDeviceDeterministic(t *testing.T) {
	c := newTestCatalog(t)
	dev := sampleDevice()

	a, err := c.ProcessDevice(context.Background(), dev)
	require.NoError(t, err)
	b, err := c.ProcessDevice(context.Background(), dev)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("repeated processing diverged (-first +second):\n%s", diff)
	}
}

func TestSignatureCache(t *testing.T) {
	c := newTestCatalog(t)
	dev := sampleDevice()

	_, err := c.ProcessDevice(context.Background(), dev)
	require.NoError(t, err)
	assert.Equal(t, 4, c.cacheSize())

	// Reprocessing the same device hits the cache instead of growing it.
	_, err = c.ProcessDevice(context.Background(), dev)
	require.NoError(t, err)
	assert.Equal(t, 4, c.cacheSize())

	// A different equipment context is a different cache entry.
	dev.EquipmentType = "AHU"
	_, err = c.ProcessDevice(context.Background(), dev)
	require.NoError(t, err)
	assert.Equal(t, 8, c.cacheSize())
}

func TestProcessBatchKeepsOrder(t *testing.T) {
	c := newTestCatalog(t)

	devs := []Device{
		{DeviceID: "a", Points: []types.RawPoint{{ObjectName: "AI1", DisplayName: "SA-T"}}},
		{DeviceID: "b", Points: []types.RawPoint{{ObjectName: "AI2", DisplayName: "RA-T"}}},
	}
	results, err := c.Process(context.Background(), devs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].DeviceID)
	assert.Equal(t, "b", results[1].DeviceID)
}

func TestProcessCancelledContext(t *testing.T) {
	c := newTestCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ProcessDevice(ctx, sampleDevice())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessEmptyDevice(t *testing.T) {
	c := newTestCatalog(t)

	res, err := c.ProcessDevice(context.Background(), Device{DeviceID: "empty"})
	require.NoError(t, err)
	assert.Empty(t, res.Points)
	assert.Equal(t, 0, res.Summary.TotalPoints)
	assert.Equal(t, 0.0, res.Summary.AverageConfidence)
}
