package scan

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolarRenderer_Render(t *testing.T) {
	res := roomResult(t)
	r := NewPolarRenderer(res.Profile, res.Exit)

	img := r.Render()
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())

	// The exit marker sits on the outer ring in the exit direction.
	radius := float64(300 - r.Padding)
	x := 300 + int(math.Round(radius*math.Cos(res.Exit.Angle)))
	y := 300 - int(math.Round(radius*math.Sin(res.Exit.Angle)))
	assert.Equal(t, nrgbaToRGBA(r.Colors.Exit), img.RGBAAt(x, y))

	// Background stays white away from the plot.
	assert.Equal(t, uint8(255), img.RGBAAt(599, 599).R)
}

func TestPolarRenderer_SavePNG(t *testing.T) {
	res := roomResult(t)
	path := filepath.Join(t.TempDir(), "polar.png")

	require.NoError(t, NewPolarRenderer(res.Profile, nil).SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
}

func TestPolarRenderer_EmptyProfile(t *testing.T) {
	p := profileWithEmpty(360, emptyRange(0, 359)...)
	img := NewPolarRenderer(p, nil).Render()
	assert.Equal(t, 600, img.Bounds().Dx())
}

func TestDrawLine_Endpoints(t *testing.T) {
	img := NewPolarRenderer(profileWithEmpty(4), nil).Render()
	c := nrgbaToRGBA(DefaultPalette().Exit)
	drawLine(img, 10, 500, 40, 520, c)
	assert.Equal(t, c, img.RGBAAt(10, 500))
	assert.Equal(t, c, img.RGBAAt(40, 520))
}
