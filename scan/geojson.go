package scan

import (
	"encoding/json"
	"io"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"
)

// DefaultOutlineTolerance is the Douglas-Peucker threshold applied to the
// mean-distance outline, in projected units.
const DefaultOutlineTolerance = 0.01

// Feature kinds stored in the "kind" property.
const (
	KindCloud    = "cloud"
	KindObserver = "observer"
	KindOutline  = "outline"
	KindExit     = "exit"
)

// OutlinePoints places one point per sector with a mean distance, at that
// distance from the observer along the sector's start angle.
func OutlinePoints(p *AngularProfile) []orb.Point {
	width := p.SectorWidth()
	var pts []orb.Point
	for _, s := range p.Sectors {
		if s.Empty() {
			continue
		}
		a := float64(s.Index) * width
		pts = append(pts, orb.Point{
			p.Observer[0] + s.MeanDistance*math.Cos(a),
			p.Observer[1] + s.MeanDistance*math.Sin(a),
		})
	}
	return pts
}

// outlineRing closes the outline and simplifies it. Returns nil when fewer
// than three sectors carry a distance.
func outlineRing(p *AngularProfile, tolerance float64) orb.Ring {
	pts := OutlinePoints(p)
	if len(pts) < 3 {
		return nil
	}
	ls := append(orb.LineString(pts), pts[0])
	if tolerance > 0 {
		if simplified, ok := simplify.DouglasPeucker(tolerance).Simplify(ls.Clone()).(orb.LineString); ok && len(simplified) >= 4 {
			ls = simplified
		}
	}
	return orb.Ring(ls)
}

// ResultFeatures converts a run into a FeatureCollection holding the
// projected cloud, the observer, the outline and the exit when there is one.
func ResultFeatures(res *Result, tolerance float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	x, y := res.AxisLabels()
	fc.ExtraMembers = geojson.Properties{
		"runId": res.RunID.String(),
		"axes":  []string{x, y},
		"parameters": map[string]interface{}{
			"outlierThreshold": res.Config.OutlierThreshold,
			"neighborWindow":   res.Config.NeighborWindow,
			"sectorCount":      res.Config.SectorCount,
		},
	}

	cloud := geojson.NewFeature(orb.MultiPoint(res.Projected))
	cloud.Properties["kind"] = KindCloud
	cloud.Properties["count"] = len(res.Projected)
	cloud.Properties["rejected"] = res.Rejected()
	fc.Append(cloud)

	observer := geojson.NewFeature(res.Observer)
	observer.Properties["kind"] = KindObserver
	fc.Append(observer)

	if ring := outlineRing(res.Profile, tolerance); ring != nil {
		outline := geojson.NewFeature(orb.Polygon{ring})
		outline.Properties["kind"] = KindOutline
		outline.Properties["emptySectors"] = res.Profile.EmptyCount()
		fc.Append(outline)
	}

	if res.Exit != nil {
		exit := geojson.NewFeature(res.Exit.Point)
		exit.Properties["kind"] = KindExit
		exit.Properties["sector"] = res.Exit.Sector
		exit.Properties["angle"] = res.Exit.Angle
		exit.Properties["angleDeg"] = res.Exit.AngleDeg()
		fc.Append(exit)
	}
	return fc
}

// WriteGeoJSON encodes the run as an indented GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, res *Result, tolerance float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ResultFeatures(res, tolerance))
}
