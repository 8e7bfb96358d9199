package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/shirsneh/navigationSystem/scan"
)

// App encapsulates the application state and dependencies
type App struct {
	Out    io.Writer
	Config scan.Config

	// CLI Flags (effectively dependencies)
	opts AppOptions
}

// NewApp creates a new App that prints to out
func NewApp(out io.Writer) *App {
	return &App{
		Out:    out,
		Config: scan.DefaultConfig(),
	}
}

// ApplyOptions applies CLI options to the App instance
func (a *App) ApplyOptions(opts AppOptions) {
	a.opts = opts
}

func (a *App) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.Out, format, args...)
}

// loadConfig builds the effective configuration: defaults, then the config
// file when present, then explicitly given flags.
func (a *App) loadConfig() error {
	cfg := scan.DefaultConfig()

	path := a.opts.ConfigFile
	_, err := os.Stat(path)
	switch {
	case err == nil:
		loaded, err := scan.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = *loaded
		log.Printf("Loaded config from %s", path)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking config file %s: %w", path, err)
	case a.opts.IsSet("config"):
		return fmt.Errorf("config file not found: %s", path)
	}

	if a.opts.IsSet("threshold") {
		cfg.OutlierThreshold = a.opts.OutlierThreshold
	}
	if a.opts.IsSet("window") {
		cfg.NeighborWindow = a.opts.NeighborWindow
	}
	if a.opts.IsSet("sectors") {
		cfg.SectorCount = a.opts.SectorCount
	}
	if a.opts.IsSet("table") {
		cfg.ResultTable = a.opts.ResultTable
	}
	if a.opts.IsSet("output-dir") {
		cfg.Output.Dir = a.opts.OutputDir
	}
	if a.opts.IsSet("render") {
		cfg.Output.Render = a.opts.RenderFormat
	}
	if a.opts.IsSet("vector-format") {
		cfg.Output.Vector = a.opts.VectorFormat
	}
	if a.opts.IsSet("charts") {
		cfg.Output.Charts = a.opts.Charts
	}
	if a.opts.IsSet("geojson") {
		cfg.Output.GeoJSON = a.opts.GeoJSON
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.Config = cfg
	return nil
}

// RunWriteConfig saves the effective configuration and exits
func (a *App) RunWriteConfig(path string) error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	if err := scan.SaveConfig(path, &a.Config); err != nil {
		return err
	}
	a.printf("Wrote config: %s\n", path)
	return nil
}

// RunDryRun parses and filters the input and prints what a full run would
// work on. Nothing is written.
func (a *App) RunDryRun() error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	raw, err := scan.ReadPointFile(a.opts.InputFile)
	if err != nil {
		return err
	}
	a.printf("Loaded %d points from %s\n", raw.Len(), a.opts.InputFile)

	filtered, err := scan.FilterOutliers(raw, a.Config.OutlierThreshold)
	if err != nil {
		return err
	}
	a.printf("Kept %d points, rejected %d (threshold %.2f)\n",
		filtered.Len(), raw.Len()-filtered.Len(), a.Config.OutlierThreshold)

	dims, err := scan.SelectBestDimensions(filtered)
	if err != nil {
		return err
	}
	a.printf("Best axes: %s, %s\n", scan.AxisName(dims[0]), scan.AxisName(dims[1]))
	a.printf("Middle point (3D): %s\n", formatVector(scan.MiddlePoint(filtered)))
	a.printf("Dry run: nothing written\n")
	return nil
}

// RunAnalysis runs the full pipeline, prints the exit and writes the
// configured artifacts
func (a *App) RunAnalysis() error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	raw, err := scan.ReadPointFile(a.opts.InputFile)
	if err != nil {
		return err
	}
	a.printf("Loaded %d points from %s\n", raw.Len(), a.opts.InputFile)

	pipeline := scan.NewPipeline(a.Config)
	if a.opts.Verbose {
		pipeline.Logger = log.Default()
	}
	res, err := pipeline.Run(raw)
	if err != nil {
		return err
	}

	a.printSummary(res)
	a.printExit(res.Exit)

	return a.writeArtifacts(res)
}

func (a *App) printSummary(res *scan.Result) {
	x, y := res.AxisLabels()
	a.printf("Run: %s\n", res.RunID)
	a.printf("Kept %d points, rejected %d (threshold %.2f)\n",
		res.Filtered.Len(), res.Rejected(), res.Config.OutlierThreshold)
	a.printf("Best axes: %s, %s\n", x, y)
	a.printf("Middle point (3D): %s\n", formatVector(res.Observer3D))
	a.printf("Observer (%s/%s): %s\n", x, y, formatVector(res.Observer[:]))
	a.printf("Empty sectors: %d of %d\n", res.Profile.EmptyCount(), res.Profile.Len())
	a.printf("Profile table: %s\n", res.Config.ResultTable)
}

func (a *App) printExit(exit *scan.Exit) {
	if exit == nil {
		a.printf("Exit Points: None\n")
		a.printf("Exit Angle: None\n")
		return
	}
	a.printf("Exit Points: %s\n", formatVector(exit.Point[:]))
	a.printf("Exit Angle: %.4f\n", exit.AngleDeg())
}

func formatVector(v []float64) string {
	s := "["
	for i, x := range v {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%.4f", x)
	}
	return s + "]"
}

// writeArtifacts writes the renders, charts and GeoJSON enabled in the
// output config
func (a *App) writeArtifacts(res *scan.Result) error {
	out := a.Config.Output
	format := out.Render
	if format == "" {
		format = "none"
	}
	if format == "none" && !out.Charts && !out.GeoJSON {
		return nil
	}
	if err := os.MkdirAll(out.Dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if format == "raster" || format == "both" {
		outputPath := filepath.Join(out.Dir, "polar.png")
		if err := scan.NewPolarRenderer(res.Profile, res.Exit).SavePNG(outputPath); err != nil {
			return fmt.Errorf("rendering raster: %w", err)
		}
		a.printf("Created raster: %s\n", outputPath)
	}

	if format == "vector" || format == "both" {
		renderer := scan.NewSceneRenderer(res)
		if out.Vector == "png" {
			outputPath := filepath.Join(out.Dir, "scene.png")
			if err := writeFile(outputPath, renderer.RenderToPNG); err != nil {
				return fmt.Errorf("rendering vector PNG: %w", err)
			}
			a.printf("Created vector PNG: %s\n", outputPath)
		} else {
			outputPath := filepath.Join(out.Dir, "scene.svg")
			if err := writeFile(outputPath, renderer.RenderToSVG); err != nil {
				return fmt.Errorf("rendering vector SVG: %w", err)
			}
			a.printf("Created vector SVG: %s\n", outputPath)
		}
	}

	if out.Charts {
		if err := a.writeCharts(res, out.Dir); err != nil {
			return err
		}
	}

	if out.GeoJSON {
		outputPath := filepath.Join(out.Dir, "result.geojson")
		err := writeFile(outputPath, func(w io.Writer) error {
			return scan.WriteGeoJSON(w, res, scan.DefaultOutlineTolerance)
		})
		if err != nil {
			return fmt.Errorf("writing GeoJSON: %w", err)
		}
		a.printf("Created GeoJSON: %s\n", outputPath)
	}
	return nil
}

func (a *App) writeCharts(res *scan.Result, dir string) error {
	distance, err := scan.DistanceChart(res.Profile, res.Exit)
	if err != nil {
		return err
	}
	counts, err := scan.CountChart(res.Profile)
	if err != nil {
		return err
	}
	charts := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"profile.png", func(w io.Writer) error { return scan.WritePlot(w, distance, "png") }},
		{"counts.png", func(w io.Writer) error { return scan.WritePlot(w, counts, "png") }},
		{"cloud.html", func(w io.Writer) error { return scan.WriteCloudHTML(w, res) }},
	}
	for _, c := range charts {
		outputPath := filepath.Join(dir, c.name)
		if err := writeFile(outputPath, c.write); err != nil {
			return fmt.Errorf("writing %s: %w", c.name, err)
		}
		a.printf("Created chart: %s\n", outputPath)
	}
	return nil
}

// writeFile creates path and hands it to write, reporting close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing %s: %w", path, cerr))
		}
	}()
	return write(f)
}
