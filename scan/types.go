package scan

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/mat"
)

// PointSet is an ordered, immutable set of N points sharing one dimensionality.
// Rows are points, columns are axes.
type PointSet struct {
	m *mat.Dense
}

// NewPointSet builds a point set from rows. Every row must have the same
// non-zero length and at least one row is required.
func NewPointSet(rows [][]float64) (*PointSet, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyPointSet
	}
	dim := len(rows[0])
	if dim == 0 {
		return nil, fmt.Errorf("row 0 has no coordinates: %w", ErrRaggedPoints)
	}
	data := make([]float64, 0, len(rows)*dim)
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("row %d has %d coordinates, want %d: %w", i, len(row), dim, ErrRaggedPoints)
		}
		data = append(data, row...)
	}
	return &PointSet{m: mat.NewDense(len(rows), dim, data)}, nil
}

// FromVectors builds a 3D point set from r3 vectors.
func FromVectors(vs []r3.Vector) (*PointSet, error) {
	if len(vs) == 0 {
		return nil, ErrEmptyPointSet
	}
	data := make([]float64, 0, len(vs)*3)
	for _, v := range vs {
		data = append(data, v.X, v.Y, v.Z)
	}
	return &PointSet{m: mat.NewDense(len(vs), 3, data)}, nil
}

// FromPoints builds a 2D point set from planar points.
func FromPoints(pts []orb.Point) (*PointSet, error) {
	if len(pts) == 0 {
		return nil, ErrEmptyPointSet
	}
	data := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		data = append(data, p[0], p[1])
	}
	return &PointSet{m: mat.NewDense(len(pts), 2, data)}, nil
}

// Len returns the number of points.
func (ps *PointSet) Len() int {
	r, _ := ps.m.Dims()
	return r
}

// Dim returns the dimensionality shared by all points.
func (ps *PointSet) Dim() int {
	_, c := ps.m.Dims()
	return c
}

// At returns coordinate j of point i.
func (ps *PointSet) At(i, j int) float64 {
	return ps.m.At(i, j)
}

// Row returns a copy of point i.
func (ps *PointSet) Row(i int) []float64 {
	return mat.Row(nil, i, ps.m)
}

// Column returns a copy of every point's coordinate on axis j.
func (ps *PointSet) Column(j int) []float64 {
	return mat.Col(nil, j, ps.m)
}

// Rows returns a copy of all points.
func (ps *PointSet) Rows() [][]float64 {
	rows := make([][]float64, ps.Len())
	for i := range rows {
		rows[i] = ps.Row(i)
	}
	return rows
}

// Vectors returns the points as r3 vectors. Only valid for 3D sets.
func (ps *PointSet) Vectors() ([]r3.Vector, error) {
	if ps.Dim() != 3 {
		return nil, fmt.Errorf("vectors need 3 dimensions, set has %d", ps.Dim())
	}
	vs := make([]r3.Vector, ps.Len())
	for i := range vs {
		vs[i] = r3.Vector{X: ps.m.At(i, 0), Y: ps.m.At(i, 1), Z: ps.m.At(i, 2)}
	}
	return vs, nil
}

// Points returns the points as planar points. Only valid for 2D sets.
func (ps *PointSet) Points() ([]orb.Point, error) {
	if ps.Dim() != 2 {
		return nil, fmt.Errorf("planar points need 2 dimensions, set has %d", ps.Dim())
	}
	pts := make([]orb.Point, ps.Len())
	for i := range pts {
		pts[i] = orb.Point{ps.m.At(i, 0), ps.m.At(i, 1)}
	}
	return pts, nil
}

// Sector is one angular bin of an AngularProfile.
type Sector struct {
	Index int
	Count int
	// MeanDistance is NaN when Count <= 1.
	MeanDistance float64
}

// Empty reports whether the sector has no usable distance estimate.
func (s Sector) Empty() bool {
	return math.IsNaN(s.MeanDistance)
}

// AngularProfile holds mean radial distances per angular sector around an
// observer. Sector 0 starts at the positive X axis and sectors advance
// counter-clockwise; the last sector is adjacent to the first.
type AngularProfile struct {
	Observer orb.Point
	Sectors  []Sector
}

// Len returns the number of sectors.
func (p *AngularProfile) Len() int {
	return len(p.Sectors)
}

// SectorWidth returns the angular width of one sector in radians.
func (p *AngularProfile) SectorWidth() float64 {
	return 2 * math.Pi / float64(len(p.Sectors))
}

// EmptyCount returns the number of sectors without a mean distance.
func (p *AngularProfile) EmptyCount() int {
	n := 0
	for _, s := range p.Sectors {
		if s.Empty() {
			n++
		}
	}
	return n
}

// TotalCount returns the number of points assigned across all sectors.
func (p *AngularProfile) TotalCount() int {
	n := 0
	for _, s := range p.Sectors {
		n += s.Count
	}
	return n
}

// Exit is the estimated exit location in projected coordinates.
type Exit struct {
	Point orb.Point
	// Angle is in radians, in [0, 2pi).
	Angle  float64
	Sector int
}

// AngleDeg returns the exit angle in degrees.
func (e *Exit) AngleDeg() float64 {
	return e.Angle * 180 / math.Pi
}
