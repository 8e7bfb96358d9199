package scan

import "errors"

var (
	// ErrUnsupportedFormat is returned when a point file extension is not .xyz or .csv.
	ErrUnsupportedFormat = errors.New("unsupported point file format")

	// ErrAllPointsRejected is returned when outlier filtering removes every point.
	ErrAllPointsRejected = errors.New("all points identified as outliers")

	// ErrEmptyPointSet is returned when a point set would contain no points.
	ErrEmptyPointSet = errors.New("point set is empty")

	// ErrRaggedPoints is returned when points in one set have different dimensionality.
	ErrRaggedPoints = errors.New("points have inconsistent dimensionality")

	// ErrTooFewDimensions is returned when a projection needs more axes than the set has.
	ErrTooFewDimensions = errors.New("too few dimensions for projection")

	// ErrInvalidConfig is returned when analysis parameters are out of range.
	ErrInvalidConfig = errors.New("invalid analysis config")
)
