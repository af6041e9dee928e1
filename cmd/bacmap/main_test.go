package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bacmap/internal/store"
)

func TestParseSide(t *testing.T) {
	side, err := parseSide("bacnet")
	require.NoError(t, err)
	assert.Equal(t, store.SideBacnet, side)

	side, err = parseSide("cxalloy")
	require.NoError(t, err)
	assert.Equal(t, store.SideCxAlloy, side)

	_, err = parseSide("other")
	assert.Error(t, err)
}

func TestLoadPointsPicksParserByExtension(t *testing.T) {
	dir := t.TempDir()

	trioPath := filepath.Join(dir, "points.trio")
	require.NoError(t, os.WriteFile(trioPath, []byte("dis: \"SA-T\"\nid: AI1\nobjectType: AI\n"), 0o644))
	points, err := loadPoints(trioPath)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "AI1", points[0].ObjectName)

	csvPath := filepath.Join(dir, "points.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Object Name,Object Type,Display Name\nAI2,AI,RA-T\n"), 0o644))
	points, err = loadPoints(csvPath)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "AI2", points[0].ObjectName)

	_, err = loadPoints(filepath.Join(dir, "missing.trio"))
	assert.Error(t, err)
}

func TestTableRender(t *testing.T) {
	tbl := newTable("Points", "A", "B")
	tbl.addRow("one", "two")
	out := tbl.render()
	assert.Contains(t, out, "Points")
	assert.Contains(t, out, "one")

	empty := newTable("Empty", "A")
	assert.Contains(t, empty.render(), "(none)")
}
