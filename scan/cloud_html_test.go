package scan

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriteCloudHTML(t *testing.T) {
	res := roomResult(t)

	var buf bytes.Buffer
	if err := WriteCloudHTML(&buf, res); err != nil {
		t.Fatalf("WriteCloudHTML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<html", "Point cloud", "filtered", "middle point", "scatter3D"} {
		if !strings.Contains(out, want) {
			t.Errorf("page is missing %q", want)
		}
	}
}

func TestWriteCloudHTML_Needs3D(t *testing.T) {
	raw, _ := NewPointSet([][]float64{{0, 0}, {1, 1}})
	res := &Result{Raw: raw, Filtered: raw, Observer3D: []float64{0.5, 0.5}}

	err := WriteCloudHTML(&bytes.Buffer{}, res)
	if !errors.Is(err, ErrTooFewDimensions) {
		t.Errorf("err = %v, want ErrTooFewDimensions", err)
	}
}

func TestCloudSeries_Stride(t *testing.T) {
	rows := make([][]float64, maxCloudPoints*2+1)
	for i := range rows {
		rows[i] = []float64{float64(i), 0, 0}
	}
	ps, _ := NewPointSet(rows)
	data := cloudSeries(ps)
	if len(data) > maxCloudPoints {
		t.Errorf("len = %d, want at most %d", len(data), maxCloudPoints)
	}
	if data[1].Value[0] != 3.0 {
		t.Errorf("second sample X = %v, want 3", data[1].Value[0])
	}
}
