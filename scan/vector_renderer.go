package scan

import (
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/paulmach/orb"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
)

// ScenePalette holds the colors of a rendered scene.
type ScenePalette struct {
	Points   color.NRGBA
	Outline  color.NRGBA
	Observer color.NRGBA
	Exit     color.NRGBA
}

// DefaultPalette mirrors the classic plot colors: blue cloud, green outline,
// red observer and a magenta exit marker.
func DefaultPalette() ScenePalette {
	return ScenePalette{
		Points:   color.NRGBA{R: 31, G: 119, B: 180, A: 160},
		Outline:  color.NRGBA{R: 44, G: 160, B: 44, A: 255},
		Observer: color.NRGBA{R: 214, G: 39, B: 40, A: 255},
		Exit:     color.NRGBA{R: 200, G: 0, B: 200, A: 255},
	}
}

// nrgbaToRGBA converts color.NRGBA to the premultiplied color.RGBA the
// canvas package expects.
func nrgbaToRGBA(c color.NRGBA) color.RGBA {
	if c.A == 0 {
		return color.RGBA{0, 0, 0, 0}
	}
	if c.A == 255 {
		return color.RGBA{c.R, c.G, c.B, 255}
	}
	alpha32 := uint32(c.A)
	return color.RGBA{
		R: uint8((uint32(c.R) * alpha32) / 255),
		G: uint8((uint32(c.G) * alpha32) / 255),
		B: uint8((uint32(c.B) * alpha32) / 255),
		A: c.A,
	}
}

// SceneRenderer draws the projected cloud, the mean-distance outline, the
// observer and the exit as vector graphics.
type SceneRenderer struct {
	Result     *Result
	Size       float64           // Longest side of the drawing in canvas units (mm)
	Padding    float64           // Padding as a fraction of the data span
	Resolution canvas.Resolution // Resolution for PNG output (default: 300 DPI)
	// GridSpacing is in projected units; 0 picks a spacing from the span.
	GridSpacing float64
	PointRadius float64 // Canvas units
	Colors      ScenePalette
}

// NewSceneRenderer creates a scene renderer with default settings.
func NewSceneRenderer(res *Result) *SceneRenderer {
	return &SceneRenderer{
		Result:      res,
		Size:        200.0,
		Padding:     0.1,
		Resolution:  canvas.DPI(300),
		PointRadius: 0.6,
		Colors:      DefaultPalette(),
	}
}

// canvasRenderer is implemented by both the svg and rasterizer renderers.
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// sceneFrame maps projected coordinates onto the canvas.
type sceneFrame struct {
	bound         orb.Bound
	scale         float64
	pad           float64
	width, height float64
}

func (f sceneFrame) toCanvas(p orb.Point) (float64, float64) {
	return (p[0]-f.bound.Min[0])*f.scale + f.pad, (p[1]-f.bound.Min[1])*f.scale + f.pad
}

func (r *SceneRenderer) frame() sceneFrame {
	res := r.Result
	b := orb.MultiPoint(res.Projected).Bound().Extend(res.Observer)
	if res.Exit != nil {
		b = b.Extend(res.Exit.Point)
	}
	span := math.Max(b.Right()-b.Left(), b.Top()-b.Bottom())
	if span == 0 {
		span = 1
	}
	scale := r.Size / span
	pad := r.Padding * r.Size
	return sceneFrame{
		bound:  b,
		scale:  scale,
		pad:    pad,
		width:  (b.Right()-b.Left())*scale + 2*pad,
		height: (b.Top()-b.Bottom())*scale + 2*pad,
	}
}

// RenderToSVG writes the scene as an SVG to the provided writer.
func (r *SceneRenderer) RenderToSVG(w io.Writer) error {
	f := r.frame()
	svgRenderer := svg.New(w, f.width, f.height, nil)
	r.renderToCanvas(svgRenderer, f)
	return svgRenderer.Close()
}

// RenderToPNG writes the scene as a PNG to the provided writer.
func (r *SceneRenderer) RenderToPNG(w io.Writer) error {
	f := r.frame()
	rast := rasterizer.New(f.width, f.height, r.Resolution, canvas.DefaultColorSpace)
	r.renderToCanvas(rast, f)
	return png.Encode(w, rast)
}

func (r *SceneRenderer) renderToCanvas(renderer canvasRenderer, f sceneFrame) {
	res := r.Result

	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	renderer.RenderPath(canvas.Rectangle(f.width, f.height), bgStyle, canvas.Identity)

	spacing := r.GridSpacing
	if spacing <= 0 {
		spacing = gridStep(math.Max(f.bound.Right()-f.bound.Left(), f.bound.Top()-f.bound.Bottom()))
	}
	gridStyle := canvas.DefaultStyle
	gridStyle.Fill = canvas.Paint{Color: canvas.Transparent}
	gridStyle.Stroke = canvas.Paint{Color: canvas.Gray}
	gridStyle.StrokeWidth = 0.1
	gridStyle.Dashes = []float64{1.0, 1.0}
	for x := math.Ceil(f.bound.Left()/spacing) * spacing; x <= f.bound.Right(); x += spacing {
		renderer.RenderPath(r.line(f, orb.Point{x, f.bound.Bottom()}, orb.Point{x, f.bound.Top()}), gridStyle, canvas.Identity)
	}
	for y := math.Ceil(f.bound.Bottom()/spacing) * spacing; y <= f.bound.Top(); y += spacing {
		renderer.RenderPath(r.line(f, orb.Point{f.bound.Left(), y}, orb.Point{f.bound.Right(), y}), gridStyle, canvas.Identity)
	}

	pointStyle := canvas.DefaultStyle
	pointStyle.Fill = canvas.Paint{Color: nrgbaToRGBA(r.Colors.Points)}
	pointStyle.Stroke = canvas.Paint{Color: canvas.Transparent}
	for _, p := range res.Projected {
		cx, cy := f.toCanvas(p)
		renderer.RenderPath(canvas.Circle(r.PointRadius).Translate(cx, cy), pointStyle, canvas.Identity)
	}

	if outline := OutlinePoints(res.Profile); len(outline) > 1 {
		outlineStyle := canvas.DefaultStyle
		outlineStyle.Fill = canvas.Paint{Color: canvas.Transparent}
		outlineStyle.Stroke = canvas.Paint{Color: nrgbaToRGBA(r.Colors.Outline)}
		outlineStyle.StrokeWidth = 0.5
		cp := &canvas.Path{}
		for i, p := range outline {
			cx, cy := f.toCanvas(p)
			if i == 0 {
				cp.MoveTo(cx, cy)
			} else {
				cp.LineTo(cx, cy)
			}
		}
		cp.Close()
		renderer.RenderPath(cp, outlineStyle, canvas.Identity)
	}

	ox, oy := f.toCanvas(res.Observer)
	observerStyle := canvas.DefaultStyle
	observerStyle.Fill = canvas.Paint{Color: nrgbaToRGBA(r.Colors.Observer)}
	observerStyle.Stroke = canvas.Paint{Color: canvas.Black}
	observerStyle.StrokeWidth = 0.3
	renderer.RenderPath(canvas.Circle(3*r.PointRadius).Translate(ox, oy), observerStyle, canvas.Identity)

	if res.Exit == nil {
		return
	}

	exitStyle := canvas.DefaultStyle
	exitStyle.Fill = canvas.Paint{Color: canvas.Transparent}
	exitStyle.Stroke = canvas.Paint{Color: nrgbaToRGBA(r.Colors.Exit)}
	exitStyle.StrokeWidth = 0.6

	rayStyle := exitStyle
	rayStyle.Dashes = []float64{2.0, 1.0}
	renderer.RenderPath(r.line(f, res.Observer, res.Exit.Point), rayStyle, canvas.Identity)

	// X marker
	ex, ey := f.toCanvas(res.Exit.Point)
	arm := 4 * r.PointRadius
	cross := &canvas.Path{}
	cross.MoveTo(ex-arm, ey-arm)
	cross.LineTo(ex+arm, ey+arm)
	cross.MoveTo(ex-arm, ey+arm)
	cross.LineTo(ex+arm, ey-arm)
	renderer.RenderPath(cross, exitStyle, canvas.Identity)
}

func (r *SceneRenderer) line(f sceneFrame, a, b orb.Point) *canvas.Path {
	x1, y1 := f.toCanvas(a)
	x2, y2 := f.toCanvas(b)
	p := &canvas.Path{}
	p.MoveTo(x1, y1)
	p.LineTo(x2, y2)
	return p
}

// gridStep picks a 1, 2 or 5 times power of ten spacing giving roughly ten
// lines across span.
func gridStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	raw := span / 10
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm < 1.5:
		return mag
	case norm < 3.5:
		return 2 * mag
	case norm < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
