package scan

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DefaultSectorCount splits the full circle into 1 degree sectors.
const DefaultSectorCount = 360

// ProfileSink receives a finished angular profile, e.g. to export it.
type ProfileSink interface {
	WriteProfile(p *AngularProfile) error
}

// Profiler bins points by angle around an observer.
type Profiler struct {
	// Sectors is the number of equal angular sectors; 0 means DefaultSectorCount.
	Sectors int
	// Sink, when set, receives the profile before Profile returns.
	Sink ProfileSink
}

// Profile assigns every point to the sector containing its angle around the
// observer and averages the radial distances per sector. Sectors holding a
// single point keep their count but get no mean distance.
func (pr Profiler) Profile(points []orb.Point, observer orb.Point) (*AngularProfile, error) {
	n := pr.Sectors
	if n == 0 {
		n = DefaultSectorCount
	}
	if n < 1 {
		return nil, fmt.Errorf("sector count %d: %w", n, ErrInvalidConfig)
	}

	sums := make([]float64, n)
	counts := make([]int, n)
	for _, p := range points {
		idx := SectorIndex(PolarAngle(observer, p), n)
		sums[idx] += planar.Distance(observer, p)
		counts[idx]++
	}

	profile := &AngularProfile{
		Observer: observer,
		Sectors:  make([]Sector, n),
	}
	for i := range profile.Sectors {
		mean := math.NaN()
		if counts[i] > 1 {
			mean = sums[i] / float64(counts[i])
		}
		profile.Sectors[i] = Sector{Index: i, Count: counts[i], MeanDistance: mean}
	}

	if pr.Sink != nil {
		if err := pr.Sink.WriteProfile(profile); err != nil {
			return nil, fmt.Errorf("exporting profile: %w", err)
		}
	}
	return profile, nil
}

// PolarAngle returns the counter-clockwise angle of p around origin in [0, 2pi).
func PolarAngle(origin, p orb.Point) float64 {
	a := math.Atan2(p[1]-origin[1], p[0]-origin[0])
	return math.Mod(a+2*math.Pi, 2*math.Pi)
}

// SectorIndex maps an angle in [0, 2pi) to one of n equal sectors.
func SectorIndex(angle float64, n int) int {
	idx := int(math.Floor(angle * float64(n) / (2 * math.Pi)))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
