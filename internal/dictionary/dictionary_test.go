package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bacmap/internal/types"
)

func TestDefaultsBuild(t *testing.T) {
	snap := Build(DefaultVersion, Defaults())
	require.NotNil(t, snap)
	assert.Equal(t, DefaultVersion, snap.Version())

	entry, ok := snap.General("TEMP")
	require.True(t, ok)
	assert.Equal(t, "Temperature", entry.Expansion)

	// Lookup is case-insensitive.
	entry, ok = snap.General("temp")
	require.True(t, ok)
	assert.Equal(t, "Temperature", entry.Expansion)

	_, ok = snap.General("NO_SUCH_ACRONYM")
	assert.False(t, ok)
}

func TestDuplicateResolution(t *testing.T) {
	// The embedded tables define CCW twice; the higher-priority reading
	// must win deterministically.
	snap := Build(DefaultVersion, Defaults())
	entry, ok := snap.General("CCW")
	require.True(t, ok)
	assert.Equal(t, "Counterclockwise", entry.Expansion)
	assert.Equal(t, 6, entry.Priority)
}

func TestDuplicateTieKeepsFirst(t *testing.T) {
	snap := Build("test", File{General: []Entry{
		{Acronym: "XX", Expansion: "First", Priority: 5},
		{Acronym: "XX", Expansion: "Second", Priority: 5},
	}})
	entry, ok := snap.General("XX")
	require.True(t, ok)
	assert.Equal(t, "First", entry.Expansion)
}

func TestEquipmentTableShadowsGeneral(t *testing.T) {
	snap := Build(DefaultVersion, Defaults())

	// ZN exists in both the general table and the VAV controller table.
	general, ok := snap.General("ZN")
	require.True(t, ok)
	equip, ok := snap.Equipment("VAV_CONTROLLER", "ZN")
	require.True(t, ok)
	assert.Equal(t, general.Expansion, equip.Expansion)
	assert.Greater(t, equip.Priority, general.Priority)

	_, ok = snap.Equipment("NO_SUCH_EQUIPMENT", "ZN")
	assert.False(t, ok)
}

func TestVendorLookup(t *testing.T) {
	snap := Build(DefaultVersion, Defaults())

	entry, ok := snap.Vendor("Johnson Controls", "ZNT")
	require.True(t, ok)
	assert.Equal(t, "Zone Temperature", entry.Expansion)

	_, ok = snap.Vendor("johnson controls", "NO_SUCH")
	assert.False(t, ok)
}

func TestOverlayMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	overlay := `general:
  - acronym: TEMP
    expansion: Temp Override
    priority: 10
  - acronym: XYZ
    expansion: Custom Thing
    priority: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.yaml"), []byte(overlay), 0o644))

	snap, err := LoadDir(dir)
	require.NoError(t, err)

	entry, ok := snap.General("TEMP")
	require.True(t, ok)
	assert.Equal(t, "Temp Override", entry.Expansion)

	entry, ok = snap.General("XYZ")
	require.True(t, ok)
	assert.Equal(t, "Custom Thing", entry.Expansion)

	// The overlay changes the version so downstream caches invalidate.
	assert.NotEqual(t, DefaultVersion, snap.Version())
}

func TestOverlayLint(t *testing.T) {
	cases := []struct {
		name    string
		overlay string
	}{
		{"empty acronym", "general:\n  - acronym: \"\"\n    expansion: X\n    priority: 5\n"},
		{"empty expansion", "general:\n  - acronym: AB\n    expansion: \"\"\n    priority: 5\n"},
		{"priority out of range", "general:\n  - acronym: AB\n    expansion: X\n    priority: 11\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(tc.overlay), 0o644))
			_, err := LoadDir(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadDirMissingIsDefaults(t *testing.T) {
	snap, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, snap.Version())
}

func TestProviderReloadKeepsSnapshotOnFailure(t *testing.T) {
	dir := t.TempDir()
	p, err := NewProvider(dir, nil)
	require.NoError(t, err)
	defer p.Close()

	before := p.Current()
	require.NotNil(t, before)

	// Drop a broken overlay and reload; the previous snapshot must survive.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(":::not yaml"), 0o644))
	require.Error(t, p.Reload())
	assert.Same(t, before, p.Current())

	// Fix the overlay; reload publishes a new snapshot.
	good := "general:\n  - acronym: QQ\n    expansion: Quality\n    priority: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(good), 0o644))
	require.NoError(t, p.Reload())
	assert.NotSame(t, before, p.Current())
	_, ok := p.Current().General("QQ")
	assert.True(t, ok)
}

func TestTagCategoryFor(t *testing.T) {
	assert.Equal(t, types.TagMeasurement, TagCategoryFor("temp"))
	assert.Equal(t, types.TagSubstance, TagCategoryFor("air"))
	assert.Equal(t, types.TagLocation, TagCategoryFor("zone"))
	assert.Equal(t, types.TagEntity, TagCategoryFor("damper"))
	assert.Equal(t, types.TagOther, TagCategoryFor("mystery"))
}

func TestInferVendor(t *testing.T) {
	assert.Equal(t, "johnson controls", InferVendor("JCI VMA-1617 ZN-T"))
	assert.Equal(t, "siemens", InferVendor("PXC36 room sensor"))
	assert.Equal(t, "", InferVendor("plain point name"))
}
