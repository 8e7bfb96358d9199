package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

// Version is set at build time via -ldflags
var Version = "dev"

// DefaultConfigFile is loaded when present and no -config flag is given.
const DefaultConfigFile = "navigation.yaml"

// AppOptions carries the parsed command line.
type AppOptions struct {
	InputFile   string
	ConfigFile  string
	WriteConfig string
	DryRun      bool
	Verbose     bool

	OutlierThreshold float64
	NeighborWindow   int
	SectorCount      int
	ResultTable      string
	OutputDir        string
	RenderFormat     string
	VectorFormat     string
	Charts           bool
	GeoJSON          bool

	// Set holds the names of flags given explicitly; only those override
	// values from the config file.
	Set map[string]bool
}

// IsSet reports whether the named flag was given on the command line.
func (o AppOptions) IsSet(name string) bool {
	return o.Set[name]
}

// Runner is implemented by App; tests substitute a mock.
type Runner interface {
	ApplyOptions(opts AppOptions)
	RunAnalysis() error
	RunDryRun() error
	RunWriteConfig(path string) error
}

func main() {
	app := NewApp(os.Stdout)
	if err := run(os.Args[1:], os.Stdout, app); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("Error: %v", err)
	}
}

func run(args []string, out io.Writer, app Runner) error {
	fs := flag.NewFlagSet("navigationSystem", flag.ContinueOnError)
	fs.SetOutput(out)

	var opts AppOptions
	fs.StringVar(&opts.InputFile, "input", "", "Point cloud file (.xyz or .csv); may also be given as the first argument")
	fs.StringVar(&opts.ConfigFile, "config", DefaultConfigFile, "Path to optional YAML configuration file")
	fs.StringVar(&opts.WriteConfig, "write-config", "", "Write the effective configuration to this YAML file and exit")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Parse and filter only, print the summary and write nothing")
	fs.BoolVar(&opts.Verbose, "v", false, "Log pipeline progress")
	fs.Float64Var(&opts.OutlierThreshold, "threshold", 3.0, "Z-score above which a point is an outlier")
	fs.IntVar(&opts.NeighborWindow, "window", 10, "Sectors searched on each side when measuring gaps")
	fs.IntVar(&opts.SectorCount, "sectors", 360, "Number of angular sectors")
	fs.StringVar(&opts.ResultTable, "table", "result.csv", "Path of the exported profile table")
	fs.StringVar(&opts.OutputDir, "output-dir", ".", "Directory for rendered artifacts")
	fs.StringVar(&opts.RenderFormat, "render", "none", "Render format: none, raster, vector, or both")
	fs.StringVar(&opts.VectorFormat, "vector-format", "svg", "Vector output format: svg or png")
	fs.BoolVar(&opts.Charts, "charts", false, "Write distance and count charts and the 3D cloud page")
	fs.BoolVar(&opts.GeoJSON, "geojson", false, "Write the analysis as GeoJSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts.Set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.Set[f.Name] = true })
	if opts.InputFile == "" && fs.NArg() > 0 {
		opts.InputFile = fs.Arg(0)
	}

	_, _ = fmt.Fprintf(out, "navigationSystem version: %s\n", Version)
	app.ApplyOptions(opts)

	if opts.WriteConfig != "" {
		return app.RunWriteConfig(opts.WriteConfig)
	}
	if opts.InputFile == "" {
		fs.Usage()
		return errors.New("no input file: pass -input or a path argument")
	}
	if opts.DryRun {
		return app.RunDryRun()
	}
	return app.RunAnalysis()
}
