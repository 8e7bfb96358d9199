package scan

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// maxCloudPoints caps each series of the interactive cloud view.
const maxCloudPoints = 20000

// cloudSeries converts a 3D point set into chart data, keeping every
// stride-th point so large clouds stay responsive in the browser.
func cloudSeries(ps *PointSet) []opts.Chart3DData {
	stride := 1
	if ps.Len() > maxCloudPoints {
		stride = (ps.Len() + maxCloudPoints - 1) / maxCloudPoints
	}
	data := make([]opts.Chart3DData, 0, ps.Len()/stride+1)
	for i := 0; i < ps.Len(); i += stride {
		v := make([]interface{}, 3)
		for j := 0; j < 3 && j < ps.Dim(); j++ {
			v[j] = ps.At(i, j)
		}
		data = append(data, opts.Chart3DData{Value: v})
	}
	return data
}

// WriteCloudHTML renders the raw and filtered 3D clouds with the 3D middle
// point as a self-contained interactive HTML page.
func WriteCloudHTML(w io.Writer, res *Result) error {
	if res.Raw.Dim() < 3 {
		return fmt.Errorf("cloud view needs 3 dimensions, got %d: %w", res.Raw.Dim(), ErrTooFewDimensions)
	}

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Point cloud", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Point cloud",
			Subtitle: fmt.Sprintf("run=%s raw=%d kept=%d", res.RunID, res.Raw.Len(), res.Filtered.Len()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: AxisName(0)}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: AxisName(1)}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: AxisName(2)}),
		charts.WithGrid3DOpts(opts.Grid3D{ViewControl: &opts.ViewControl{AutoRotate: opts.Bool(false)}}),
	)

	scatter.AddSeries("raw", cloudSeries(res.Raw),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9e9e9e", Opacity: opts.Float(0.4)}))
	scatter.AddSeries("filtered", cloudSeries(res.Filtered),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#1f77b4"}))

	mid := res.Observer3D
	scatter.AddSeries("middle point", []opts.Chart3DData{{
		Name:  "middle point",
		Value: []interface{}{mid[0], mid[1], mid[2]},
	}}, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#d62728"}))

	return scatter.Render(w)
}
