package scan

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultOutlierThreshold is the z-score magnitude above which a coordinate is
// considered an outlier. 99.7% of normally distributed data lies within 3 sigma.
const DefaultOutlierThreshold = 3.0

// FilterOutliers removes points whose z-score on any axis exceeds threshold.
// Scores are computed per axis with the population standard deviation. An
// axis with zero spread flags no points. The relative order of the kept
// points is preserved.
func FilterOutliers(ps *PointSet, threshold float64) (*PointSet, error) {
	n, dim := ps.Len(), ps.Dim()
	outlier := make([]bool, n)

	for j := 0; j < dim; j++ {
		col := ps.Column(j)
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			continue
		}
		for i, x := range col {
			if math.Abs(stat.StdScore(x, mean, std)) > threshold {
				outlier[i] = true
			}
		}
	}

	kept := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		if !outlier[i] {
			kept = append(kept, ps.Row(i))
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("filtering %d points at threshold %.2f: %w", n, threshold, ErrAllPointsRejected)
	}
	return NewPointSet(kept)
}
