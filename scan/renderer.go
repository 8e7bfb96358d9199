package scan

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PolarRenderer rasterizes an angular profile as a polar plot: mean distance
// per sector around the observer, with the exit direction highlighted.
type PolarRenderer struct {
	Profile *AngularProfile
	Exit    *Exit
	Size    int // Image width and height in pixels
	Padding int // Pixels between the outer ring and the image edge
	Rings   int // Number of distance rings
	Colors  ScenePalette
}

// NewPolarRenderer creates a polar renderer with default settings.
func NewPolarRenderer(p *AngularProfile, exit *Exit) *PolarRenderer {
	return &PolarRenderer{
		Profile: p,
		Exit:    exit,
		Size:    600,
		Padding: 40,
		Rings:   4,
		Colors:  DefaultPalette(),
	}
}

// maxDistance returns the largest sector mean, or 1 when no sector has one.
func (r *PolarRenderer) maxDistance() float64 {
	m := 0.0
	for _, s := range r.Profile.Sectors {
		if !s.Empty() && s.MeanDistance > m {
			m = s.MeanDistance
		}
	}
	if m == 0 {
		return 1
	}
	return m
}

// Render draws the plot into a new image.
func (r *PolarRenderer) Render() *image.RGBA {
	size := r.Size
	if size < 2*r.Padding+10 {
		size = 2*r.Padding + 10
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	c := size / 2
	radius := float64(c - r.Padding)
	maxDist := r.maxDistance()
	toImage := func(angle, dist float64) (int, int) {
		rr := dist / maxDist * radius
		// Image rows grow downwards.
		return c + int(math.Round(rr*math.Cos(angle))), c - int(math.Round(rr*math.Sin(angle)))
	}

	grid := color.RGBA{200, 200, 200, 255}
	label := color.RGBA{90, 90, 90, 255}
	for i := 1; i <= r.Rings; i++ {
		d := maxDist * float64(i) / float64(r.Rings)
		drawRing(img, c, c, int(math.Round(radius*float64(i)/float64(r.Rings))), grid)
		x, y := toImage(math.Pi/8, d)
		drawText(img, x+2, y, fmt.Sprintf("%.2f", d), label)
	}
	for deg := 0; deg < 360; deg += 30 {
		a := float64(deg) * math.Pi / 180
		x, y := toImage(a, maxDist)
		drawLine(img, c, c, x, y, grid)
		lx, ly := toImage(a, maxDist*1.08)
		drawText(img, lx-10, ly+5, fmt.Sprintf("%d", deg), label)
	}

	outline := nrgbaToRGBA(r.Colors.Outline)
	width := r.Profile.SectorWidth()
	prevX, prevY, prevOK := 0, 0, false
	for _, s := range r.Profile.Sectors {
		if s.Empty() {
			prevOK = false
			continue
		}
		x, y := toImage(float64(s.Index)*width, s.MeanDistance)
		if prevOK {
			drawLine(img, prevX, prevY, x, y, outline)
		}
		drawCircle(img, x, y, 2, outline)
		prevX, prevY, prevOK = x, y, true
	}

	drawSquare(img, c, c, 7, nrgbaToRGBA(r.Colors.Observer))

	if r.Exit != nil {
		exit := nrgbaToRGBA(r.Colors.Exit)
		x, y := toImage(r.Exit.Angle, maxDist)
		drawLine(img, c, c, x, y, exit)
		drawCircle(img, x, y, 5, exit)
	}

	r.drawLegend(img)
	return img
}

// SavePNG saves the rendered plot to a file.
func (r *PolarRenderer) SavePNG(path string) (err error) {
	img := r.Render()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}

func (r *PolarRenderer) drawLegend(img *image.RGBA) {
	black := color.RGBA{0, 0, 0, 255}
	entries := []struct {
		text string
		c    color.NRGBA
	}{
		{"average distance", r.Colors.Outline},
		{"observer", r.Colors.Observer},
	}
	if r.Exit != nil {
		entries = append(entries, struct {
			text string
			c    color.NRGBA
		}{fmt.Sprintf("exit %.1f deg", r.Exit.AngleDeg()), r.Colors.Exit})
	}

	y := 15
	for _, e := range entries {
		swatch := nrgbaToRGBA(e.c)
		for dy := 0; dy < 10; dy++ {
			for dx := 0; dx < 10; dx++ {
				img.Set(10+dx, y+dy-9, swatch)
			}
		}
		drawText(img, 26, y, e.text, black)
		y += 16
	}
	drawText(img, 10, y, fmt.Sprintf("%d of %d sectors empty", r.Profile.EmptyCount(), r.Profile.Len()), black)
}

func inBounds(img *image.RGBA, x, y int) bool {
	return image.Pt(x, y).In(img.Bounds())
}

// drawCircle draws a filled circle
func drawCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius && inBounds(img, cx+dx, cy+dy) {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// drawRing draws a one pixel circle outline
func drawRing(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	steps := int(2*math.Pi*float64(radius)) + 1
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(float64(radius)*math.Cos(a)))
		y := cy + int(math.Round(float64(radius)*math.Sin(a)))
		if inBounds(img, x, y) {
			img.Set(x, y, c)
		}
	}
}

// drawSquare draws a filled square
func drawSquare(img *image.RGBA, cx, cy, size int, c color.RGBA) {
	half := size / 2
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			if inBounds(img, cx+dx, cy+dy) {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// drawLine draws a one pixel line using Bresenham's algorithm
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if inBounds(img, x0, y0) {
			img.Set(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// drawText renders text onto an image at the specified position
func drawText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
