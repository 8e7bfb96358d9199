package scan

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

// roomCloud returns a ring of radius 5 to 5.2 around the origin with an
// opening between 100 and 160 degrees, alternating Z between 0 and 0.1, and
// one far outlier on the X axis.
func roomCloud(t *testing.T) *PointSet {
	t.Helper()
	var vs []r3.Vector
	for k := 0; k < 720; k++ {
		deg := float64(k) * 0.5
		if deg >= 100 && deg <= 160 {
			continue
		}
		a := deg * math.Pi / 180
		z := 0.1 * float64(k%2)
		for _, r := range []float64{5.0, 5.2} {
			vs = append(vs, r3.Vector{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z})
		}
	}
	vs = append(vs, r3.Vector{X: 100, Y: 0, Z: 0})
	ps, err := FromVectors(vs)
	if err != nil {
		t.Fatalf("FromVectors: %v", err)
	}
	return ps
}

// roomResult runs the pipeline over roomCloud without exporting a table.
func roomResult(t *testing.T) *Result {
	t.Helper()
	p := &Pipeline{Config: DefaultConfig()}
	res, err := p.Run(roomCloud(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

// profileWithEmpty builds an n sector profile where the listed sectors are
// empty and every other sector holds two points at distance 1.
func profileWithEmpty(n int, empty ...int) *AngularProfile {
	isEmpty := make(map[int]bool, len(empty))
	for _, i := range empty {
		isEmpty[i] = true
	}
	p := &AngularProfile{Sectors: make([]Sector, n)}
	for i := range p.Sectors {
		if isEmpty[i] {
			p.Sectors[i] = Sector{Index: i, MeanDistance: math.NaN()}
		} else {
			p.Sectors[i] = Sector{Index: i, Count: 2, MeanDistance: 1}
		}
	}
	return p
}

func emptyRange(from, to int) []int {
	var idx []int
	for i := from; i <= to; i++ {
		idx = append(idx, i)
	}
	return idx
}
