package scan

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestSceneRenderer_SVG(t *testing.T) {
	r := NewSceneRenderer(roomResult(t))

	var buf bytes.Buffer
	if err := r.RenderToSVG(&buf); err != nil {
		t.Fatalf("RenderToSVG: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("output is not an SVG document: %.80q", out)
	}
	if !strings.Contains(out, "</svg>") {
		t.Error("SVG document was not closed")
	}
}

func TestSceneRenderer_PNG(t *testing.T) {
	r := NewSceneRenderer(roomResult(t))
	r.Resolution = 2 // keep the raster small

	var buf bytes.Buffer
	if err := r.RenderToPNG(&buf); err != nil {
		t.Fatalf("RenderToPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		t.Errorf("empty image bounds %v", b)
	}
}

func TestSceneRenderer_NoExit(t *testing.T) {
	res := roomResult(t)
	res.Exit = nil

	var buf bytes.Buffer
	if err := NewSceneRenderer(res).RenderToSVG(&buf); err != nil {
		t.Fatalf("RenderToSVG: %v", err)
	}
}

func TestNrgbaToRGBA(t *testing.T) {
	tests := []struct {
		in   color.NRGBA
		want color.RGBA
	}{
		{color.NRGBA{R: 10, G: 20, B: 30, A: 0}, color.RGBA{}},
		{color.NRGBA{R: 10, G: 20, B: 30, A: 255}, color.RGBA{R: 10, G: 20, B: 30, A: 255}},
		{color.NRGBA{R: 255, G: 0, B: 100, A: 51}, color.RGBA{R: 51, G: 0, B: 20, A: 51}},
	}
	for _, tt := range tests {
		if got := nrgbaToRGBA(tt.in); got != tt.want {
			t.Errorf("nrgbaToRGBA(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGridStep(t *testing.T) {
	tests := map[float64]float64{
		0:   1,
		10:  1,
		25:  2,
		60:  5,
		90:  10,
		0.3: 0.02,
	}
	for span, want := range tests {
		got := gridStep(span)
		if diff := got - want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("gridStep(%v) = %v, want %v", span, got, want)
		}
	}
}
