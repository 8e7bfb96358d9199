package scan

import (
	"bytes"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func featuresByKind(fc *geojson.FeatureCollection) map[string]*geojson.Feature {
	m := make(map[string]*geojson.Feature)
	for _, f := range fc.Features {
		m[f.Properties.MustString("kind")] = f
	}
	return m
}

func TestResultFeatures(t *testing.T) {
	res := roomResult(t)
	fc := ResultFeatures(res, DefaultOutlineTolerance)

	byKind := featuresByKind(fc)
	require.Len(t, byKind, 4)

	cloud, ok := byKind[KindCloud].Geometry.(orb.MultiPoint)
	require.True(t, ok)
	assert.Len(t, cloud, len(res.Projected))

	assert.Equal(t, res.Observer, byKind[KindObserver].Geometry)

	poly, ok := byKind[KindOutline].Geometry.(orb.Polygon)
	require.True(t, ok)
	ring := poly[0]
	assert.True(t, ring.Closed())
	assert.LessOrEqual(t, len(ring), res.Profile.Len()-res.Profile.EmptyCount()+1)

	exit := byKind[KindExit]
	assert.Equal(t, res.Exit.Point, exit.Geometry)
	assert.Equal(t, 130, exit.Properties["sector"])

	assert.Equal(t, res.RunID.String(), fc.ExtraMembers["runId"])
}

func TestResultFeatures_NoExit(t *testing.T) {
	res := roomResult(t)
	res.Exit = nil
	byKind := featuresByKind(ResultFeatures(res, 0))
	assert.Len(t, byKind, 3)
	assert.NotContains(t, byKind, KindExit)
}

func TestWriteGeoJSON(t *testing.T) {
	res := roomResult(t)

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, res, DefaultOutlineTolerance))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, fc.Features, 4)
	assert.Equal(t, res.RunID.String(), fc.ExtraMembers.MustString("runId"))

	byKind := featuresByKind(fc)
	assert.Equal(t, 130.0, byKind[KindExit].Properties.MustFloat64("sector"))
}

func TestOutlinePoints(t *testing.T) {
	p := profileWithEmpty(4, 1)
	p.Observer = orb.Point{1, 1}
	pts := OutlinePoints(p)
	require.Len(t, pts, 3)
	assert.InDelta(t, 2, pts[0][0], 1e-12)
	assert.InDelta(t, 1, pts[0][1], 1e-12)
	assert.InDelta(t, 0, pts[1][0], 1e-12)
}
