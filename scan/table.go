package scan

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// DefaultTablePath is where the profile table is written when no path is configured.
const DefaultTablePath = "result.csv"

// TableHeader is the column layout of the exported profile table.
var TableHeader = []string{"angle", "count", "average_distance"}

// TableSink writes each profile it receives to a CSV file, replacing any
// previous table at Path.
type TableSink struct {
	Path string
}

// WriteProfile implements ProfileSink.
func (s TableSink) WriteProfile(p *AngularProfile) (err error) {
	path := s.Path
	if path == "" {
		path = DefaultTablePath
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating profile table: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing profile table: %w", cerr))
		}
	}()
	return WriteProfileTable(f, p)
}

// WriteProfileTable writes one row per sector. Sectors without a mean
// distance are written as "nan".
func WriteProfileTable(w io.Writer, p *AngularProfile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TableHeader); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, s := range p.Sectors {
		row := []string{
			strconv.Itoa(s.Index),
			strconv.Itoa(s.Count),
			formatDistance(s.MeanDistance),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing sector %d: %w", s.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDistance(d float64) string {
	if math.IsNaN(d) {
		return "nan"
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}
