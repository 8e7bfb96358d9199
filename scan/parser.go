package scan

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
)

// ReadPointFile reads a 3D point cloud, choosing the parser by file extension.
// Supported extensions are .xyz and .csv.
func ReadPointFile(path string) (*PointSet, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var parse func(io.Reader) ([]r3.Vector, error)
	switch ext {
	case ".xyz":
		parse = ParseXYZ
	case ".csv":
		parse = ParseCSV
	default:
		return nil, fmt.Errorf("%q: %w (only .xyz and .csv are supported)", ext, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening point file: %w", err)
	}
	defer func() { _ = f.Close() }()

	vs, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return FromVectors(vs)
}

// ParseXYZ parses one point per line. The first three whitespace separated
// tokens are X, Y and Z; further tokens are ignored. Blank lines are skipped.
func ParseXYZ(r io.Reader) ([]r3.Vector, error) {
	var points []r3.Vector
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		v, err := parseVector(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		points = append(points, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading xyz data: %w", err)
	}
	return points, nil
}

// ParseCSV parses comma separated rows using the first three columns as X, Y
// and Z. A first row that is not numeric is treated as a header.
func ParseCSV(r io.Reader) ([]r3.Vector, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var points []r3.Vector
	rowNo := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv data: %w", err)
		}
		rowNo++
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		v, err := parseVector(row)
		if err != nil {
			if rowNo == 1 {
				continue
			}
			return nil, fmt.Errorf("row %d: %w", rowNo, err)
		}
		points = append(points, v)
	}
	return points, nil
}

func parseVector(fields []string) (r3.Vector, error) {
	if len(fields) < 3 {
		return r3.Vector{}, fmt.Errorf("expected at least 3 values, got %d", len(fields))
	}
	var xyz [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return r3.Vector{}, fmt.Errorf("parsing coordinate %d: %w", i, err)
		}
		xyz[i] = f
	}
	return r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
