package scan

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart sizes used by WritePlot callers.
var (
	ChartWidth  = vg.Points(800)
	ChartHeight = vg.Points(400)
)

// DistanceChart plots the mean distance of every sector against its start
// angle in degrees. Empty sectors break the line; the exit, when present,
// is marked with a dashed vertical line.
func DistanceChart(p *AngularProfile, exit *Exit) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = "Average distance by angle"
	pl.X.Label.Text = "Angle (deg)"
	pl.Y.Label.Text = "Average distance"
	pl.X.Min = 0
	pl.X.Max = 360
	pl.Add(plotter.NewGrid())

	degPerSector := 360 / float64(p.Len())
	maxDist := 0.0
	var runs []plotter.XYs
	var cur plotter.XYs
	for _, s := range p.Sectors {
		if s.Empty() {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(s.Index) * degPerSector, Y: s.MeanDistance})
		if s.MeanDistance > maxDist {
			maxDist = s.MeanDistance
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	pl.Y.Min = 0
	if maxDist == 0 {
		pl.Y.Max = 1
	}

	outline := color.RGBA{G: 160, B: 44, A: 255}
	for i, xys := range runs {
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to create distance line: %w", err)
		}
		line.Color = outline
		line.LineStyle.Width = vg.Points(1.5)
		points.Color = outline
		points.GlyphStyle.Radius = vg.Points(1.5)
		pl.Add(line, points)
		if i == 0 {
			pl.Legend.Add("average distance", line)
		}
	}

	if exit != nil {
		top := maxDist
		if top == 0 {
			top = 1
		}
		marker, err := plotter.NewLine(plotter.XYs{{X: exit.AngleDeg(), Y: 0}, {X: exit.AngleDeg(), Y: top}})
		if err != nil {
			return nil, fmt.Errorf("failed to create exit marker: %w", err)
		}
		marker.Color = color.RGBA{R: 200, B: 200, A: 255}
		marker.LineStyle.DashArray = []vg.Length{vg.Points(5), vg.Points(5)}
		pl.Add(marker)
		pl.Legend.Add(fmt.Sprintf("exit %.1f deg", exit.AngleDeg()), marker)
	}

	pl.Legend.Top = true
	return pl, nil
}

// CountChart plots the raw point count of every sector as bars.
func CountChart(p *AngularProfile) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = "Points per sector"
	pl.X.Label.Text = "Sector"
	pl.Y.Label.Text = "Count"

	values := make(plotter.Values, p.Len())
	for i, s := range p.Sectors {
		values[i] = float64(s.Count)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create count bars: %w", err)
	}
	bars.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	bars.LineStyle.Width = 0
	pl.Add(plotter.NewGrid(), bars)
	return pl, nil
}

// WritePlot encodes pl in the given format ("png", "svg", "pdf", ...).
func WritePlot(w io.Writer, pl *plot.Plot, format string) error {
	writer, err := pl.WriterTo(ChartWidth, ChartHeight, format)
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}
