package trio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bacmap/internal/types"
)

const sampleTrio = `dis: "ROOM TEMP 4"
id: AI39
objectType: AI
unit: "°F"
point
---
dis: "DAMPER POS 5"
id: AO0
objectType: AO
unit: "%"
cmd
---
// exporter writes broken records sometimes
dis: "BROKEN"
id: X1
objectType: ZZ
---
dis: "ZN-T SP"
id: AV12
objectType: av
writable
`

func TestParseTrio(t *testing.T) {
	res, err := ParseTrio(strings.NewReader(sampleTrio))
	require.NoError(t, err)
	require.Len(t, res.Points, 3)
	require.Len(t, res.Errors, 1)

	first := res.Points[0]
	assert.Equal(t, "AI39", first.ObjectName)
	assert.Equal(t, types.ObjectAnalogInput, first.ObjectType)
	assert.Equal(t, "ROOM TEMP 4", first.DisplayName)
	assert.Equal(t, "°F", first.Units)
	assert.False(t, first.IsWritable)

	second := res.Points[1]
	assert.True(t, second.IsCommand)
	assert.True(t, second.IsWritable)

	// Object types are case-insensitive at the boundary.
	third := res.Points[2]
	assert.Equal(t, types.ObjectAnalogValue, third.ObjectType)
	assert.True(t, third.IsWritable)

	assert.Equal(t, 3, res.Errors[0].Record)
	assert.Equal(t, "objectType", res.Errors[0].Field)
}

func TestParseTrioEmpty(t *testing.T) {
	res, err := ParseTrio(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, res.Points)
	assert.Empty(t, res.Errors)
}

func TestParseTrioMarkerOnlyRecordSkipped(t *testing.T) {
	res, err := ParseTrio(strings.NewReader("point\nhis\n---\n"))
	require.NoError(t, err)
	assert.Empty(t, res.Points)
}

const sampleCSV = `Object Name,Object Type,Display Name,Units,Writable
AI39,AI,ROOM TEMP 4,°F,no
AO0,AO,DAMPER POS 5,%,yes
X1,BAD,BROKEN,,
AV12,AV,ZN-T SP,°F,true
`

func TestParseCSV(t *testing.T) {
	res, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, res.Points, 3)
	require.Len(t, res.Errors, 1)

	assert.Equal(t, "AI39", res.Points[0].ObjectName)
	assert.Equal(t, types.ObjectAnalogInput, res.Points[0].ObjectType)
	assert.False(t, res.Points[0].IsWritable)
	assert.True(t, res.Points[1].IsWritable)
	assert.Equal(t, 3, res.Errors[0].Record)
}

func TestParseCSVNoRecognizedColumns(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("foo,bar\n1,2\n"))
	assert.Error(t, err)
}

func TestParseCSVEmpty(t *testing.T) {
	res, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, res.Points)
}
