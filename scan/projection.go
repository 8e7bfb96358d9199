package scan

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// AxisNames labels the axes of a raw 3D cloud.
var AxisNames = []string{"X", "Y", "Z"}

// AxisName returns the display name of axis i.
func AxisName(i int) string {
	if i >= 0 && i < len(AxisNames) {
		return AxisNames[i]
	}
	return fmt.Sprintf("D%d", i)
}

// AxisVariances returns the population variance of every axis.
func AxisVariances(ps *PointSet) []float64 {
	variances := make([]float64, ps.Dim())
	for j := range variances {
		variances[j] = stat.PopVariance(ps.Column(j), nil)
	}
	return variances
}

// SelectBestDimensions returns the indices of the two axes with the highest
// variance, highest first. Equal variances keep the lower axis first.
func SelectBestDimensions(ps *PointSet) ([]int, error) {
	if ps.Dim() < 2 {
		return nil, fmt.Errorf("selecting 2 of %d axes: %w", ps.Dim(), ErrTooFewDimensions)
	}
	variances := AxisVariances(ps)
	order := make([]int, len(variances))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return variances[order[a]] > variances[order[b]]
	})
	return order[:2], nil
}

// Project returns a new point set holding only the given axes, in the given
// order. Point count and order are unchanged.
func Project(ps *PointSet, dims []int) (*PointSet, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("projecting onto no axes: %w", ErrTooFewDimensions)
	}
	for _, d := range dims {
		if d < 0 || d >= ps.Dim() {
			return nil, fmt.Errorf("axis %d out of range for %d dimensions", d, ps.Dim())
		}
	}
	rows := make([][]float64, ps.Len())
	for i := range rows {
		row := make([]float64, len(dims))
		for k, d := range dims {
			row[k] = ps.At(i, d)
		}
		rows[i] = row
	}
	return NewPointSet(rows)
}
