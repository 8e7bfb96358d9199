package scan

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Result carries every artifact of one analysis run. Nothing in it is
// modified after Run returns.
type Result struct {
	RunID  uuid.UUID
	Config Config

	Raw      *PointSet
	Filtered *PointSet
	// Observer3D is the bounding box middle of the filtered 3D cloud. It is
	// only used for diagnostics.
	Observer3D []float64

	Dimensions []int
	Projected  []orb.Point
	Observer   orb.Point
	Profile    *AngularProfile
	// Exit is nil when the profile has no empty sector.
	Exit *Exit
}

// Rejected returns how many raw points the outlier filter removed.
func (r *Result) Rejected() int {
	return r.Raw.Len() - r.Filtered.Len()
}

// AxisLabels returns the names of the two projected axes.
func (r *Result) AxisLabels() (string, string) {
	return AxisName(r.Dimensions[0]), AxisName(r.Dimensions[1])
}

// Pipeline runs the exit analysis on a raw point cloud.
type Pipeline struct {
	Config Config
	// Sink receives the angular profile; nil skips the export.
	Sink ProfileSink
	// Logger receives progress lines; nil is silent.
	Logger *log.Logger
}

// NewPipeline creates a pipeline that exports the profile table to
// cfg.ResultTable.
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{
		Config: cfg,
		Sink:   TableSink{Path: cfg.ResultTable},
	}
}

// Run filters, projects and profiles raw, then locates the exit.
func (p *Pipeline) Run(raw *PointSet) (*Result, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	res := &Result{
		RunID:  uuid.New(),
		Config: p.Config,
		Raw:    raw,
	}

	filtered, err := FilterOutliers(raw, p.Config.OutlierThreshold)
	if err != nil {
		return nil, err
	}
	res.Filtered = filtered
	res.Observer3D = MiddlePoint(filtered)
	p.logf("[%s] kept %d of %d points (threshold %.2f)", res.RunID, filtered.Len(), raw.Len(), p.Config.OutlierThreshold)

	dims, err := SelectBestDimensions(filtered)
	if err != nil {
		return nil, err
	}
	res.Dimensions = dims
	projected, err := Project(filtered, dims)
	if err != nil {
		return nil, fmt.Errorf("projecting onto axes %v: %w", dims, err)
	}
	res.Projected, err = projected.Points()
	if err != nil {
		return nil, err
	}
	mid := MiddlePoint(projected)
	res.Observer = orb.Point{mid[0], mid[1]}
	x, y := res.AxisLabels()
	p.logf("[%s] projected onto %s/%s, observer at (%.3f, %.3f)", res.RunID, x, y, res.Observer[0], res.Observer[1])

	profiler := Profiler{Sectors: p.Config.SectorCount, Sink: p.Sink}
	res.Profile, err = profiler.Profile(res.Projected, res.Observer)
	if err != nil {
		return nil, err
	}
	p.logf("[%s] %d of %d sectors empty", res.RunID, res.Profile.EmptyCount(), res.Profile.Len())

	res.Exit = LocateExit(res.Projected, res.Observer, res.Profile, p.Config.NeighborWindow)
	if res.Exit != nil {
		p.logf("[%s] exit at sector %d", res.RunID, res.Exit.Sector)
	} else {
		p.logf("[%s] no exit found", res.RunID)
	}
	return res, nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}
