package scan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// clusterWithOutlier returns 20 points in a small box plus one far away on X.
func clusterWithOutlier() [][]float64 {
	rows := make([][]float64, 0, 21)
	for i := 0; i < 20; i++ {
		rows = append(rows, []float64{float64(i%5) * 0.1, float64(i%4) * 0.1, float64(i%3) * 0.1})
	}
	return append(rows, []float64{1000, 0, 0})
}

func TestFilterOutliers_RemovesFarPoint(t *testing.T) {
	rows := clusterWithOutlier()
	ps, _ := NewPointSet(rows)

	got, err := FilterOutliers(ps, DefaultOutlierThreshold)
	if err != nil {
		t.Fatalf("FilterOutliers: %v", err)
	}
	if diff := cmp.Diff(rows[:20], got.Rows()); diff != "" {
		t.Errorf("kept points mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterOutliers_Idempotent(t *testing.T) {
	ps, _ := NewPointSet(clusterWithOutlier())
	once, err := FilterOutliers(ps, DefaultOutlierThreshold)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	twice, err := FilterOutliers(once, DefaultOutlierThreshold)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if diff := cmp.Diff(once.Rows(), twice.Rows()); diff != "" {
		t.Errorf("second pass changed the set (-first +second):\n%s", diff)
	}
}

func TestFilterOutliers_ConstantAxisIgnored(t *testing.T) {
	ps, _ := NewPointSet([][]float64{{1, 5, 0}, {2, 5, 0}, {3, 5, 0}})
	got, err := FilterOutliers(ps, DefaultOutlierThreshold)
	if err != nil {
		t.Fatalf("FilterOutliers: %v", err)
	}
	if got.Len() != 3 {
		t.Errorf("Len = %d, want 3", got.Len())
	}
}

func TestFilterOutliers_ThresholdIsStrict(t *testing.T) {
	// Two points sit exactly one standard deviation from the mean.
	ps, _ := NewPointSet([][]float64{{0}, {1}})
	got, err := FilterOutliers(ps, 1.0)
	if err != nil {
		t.Fatalf("FilterOutliers: %v", err)
	}
	if got.Len() != 2 {
		t.Errorf("Len = %d, want 2", got.Len())
	}
}

func TestFilterOutliers_AllRejected(t *testing.T) {
	ps, _ := NewPointSet([][]float64{{0, 0, 0}, {1, 1, 1}})
	_, err := FilterOutliers(ps, 0.5)
	if !errors.Is(err, ErrAllPointsRejected) {
		t.Errorf("err = %v, want ErrAllPointsRejected", err)
	}
}
