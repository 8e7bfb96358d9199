package scan

import (
	"gonum.org/v1/gonum/floats"
)

// MiddlePoint returns the midpoint of the axis-aligned bounding box of the
// set. Unlike the centroid it is not pulled toward densely scanned walls.
func MiddlePoint(ps *PointSet) []float64 {
	mid := make([]float64, ps.Dim())
	for j := range mid {
		col := ps.Column(j)
		mid[j] = (floats.Min(col) + floats.Max(col)) / 2
	}
	return mid
}
