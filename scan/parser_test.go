package scan

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseXYZ(t *testing.T) {
	in := "1 2 3\n\n  4.5\t-5 6e1 extra\n"
	got, err := ParseXYZ(strings.NewReader(in))
	require.NoError(t, err)

	want := []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: 4.5, Y: -5, Z: 60}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseXYZ mismatch (-want +got):\n%s", diff)
	}
}

func TestParseXYZ_BadLine(t *testing.T) {
	_, err := ParseXYZ(strings.NewReader("1 2 3\n1 two 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = ParseXYZ(strings.NewReader("1 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 3 values")
}

func TestParseCSV_Header(t *testing.T) {
	in := "x,y,z\n1,2,3\n4, 5, 6,7\n"
	got, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	want := []r3.Vector{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseCSV mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSV_BadRow(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("1,2,3\n4,5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadPointFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.XYZ")
	require.NoError(t, os.WriteFile(path, []byte("0 0 0\n1 1 1\n2 2 2\n"), 0644))

	ps, err := ReadPointFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, ps.Len())
	assert.Equal(t, 3, ps.Dim())
	assert.Equal(t, 2.0, ps.At(2, 1))
}

func TestReadPointFile_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.ply")
	require.NoError(t, os.WriteFile(path, []byte("0 0 0\n"), 0644))

	_, err := ReadPointFile(path)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), "err = %v", err)
}

func TestReadPointFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y,z\n"), 0644))

	_, err := ReadPointFile(path)
	assert.True(t, errors.Is(err, ErrEmptyPointSet), "err = %v", err)
}

func TestReadPointFile_Missing(t *testing.T) {
	_, err := ReadPointFile(filepath.Join(t.TempDir(), "missing.xyz"))
	assert.Error(t, err)
}
