package scan

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DefaultNeighborWindow is how many sectors the gap search walks on each side.
const DefaultNeighborWindow = 10

// EmptyRunLengths returns, for every empty sector, the length of the run of
// consecutive empty sectors spanning it. Non-empty sectors get 0.
//
// The search walks at most window sectors left and right, wrapping around the
// circle. A side that finds no non-empty sector within the window places its
// boundary one step past the window edge, so runs longer than 2*window+1 are
// reported as 2*window+1.
func EmptyRunLengths(p *AngularProfile, window int) []int {
	n := p.Len()
	runs := make([]int, n)
	for i, s := range p.Sectors {
		if !s.Empty() {
			continue
		}
		left, right := window+1, window+1
		for off := 1; off <= window; off++ {
			if left > window && !p.Sectors[wrap(i-off, n)].Empty() {
				left = off
			}
			if right > window && !p.Sectors[wrap(i+off, n)].Empty() {
				right = off
			}
			if left <= window && right <= window {
				break
			}
		}
		runs[i] = left + right - 1
	}
	return runs
}

// LocateExit picks the empty sector at the centre of the longest run of empty
// sectors and projects it to a point at the mean radial distance of all
// points. It returns nil when the profile has no empty sector.
func LocateExit(points []orb.Point, observer orb.Point, p *AngularProfile, window int) *Exit {
	n := p.Len()
	if n == 0 || p.EmptyCount() == 0 {
		return nil
	}

	runs := EmptyRunLengths(p, window)
	best := 0
	for i, s := range p.Sectors {
		if s.Empty() && runs[i] > best {
			best = runs[i]
		}
	}

	// Walk the circle from just past the last non-empty sector. Ties stay in
	// ascending order unless a run crosses index 0.
	start := 0
	for i := n - 1; i >= 0; i-- {
		if !p.Sectors[i].Empty() {
			start = wrap(i+1, n)
			break
		}
	}
	var tied []int
	for k := 0; k < n; k++ {
		i := wrap(start+k, n)
		if p.Sectors[i].Empty() && runs[i] == best {
			tied = append(tied, i)
		}
	}

	idx := tied[len(tied)/2]
	angle := float64(idx) * p.SectorWidth()
	radius := meanRadius(points, observer)
	return &Exit{
		Point: orb.Point{
			observer[0] + radius*math.Cos(angle),
			observer[1] + radius*math.Sin(angle),
		},
		Angle:  angle,
		Sector: idx,
	}
}

func meanRadius(points []orb.Point, observer orb.Point) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, pt := range points {
		sum += planar.Distance(observer, pt)
	}
	return sum / float64(len(points))
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
