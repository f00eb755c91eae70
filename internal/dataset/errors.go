package dataset

import "errors"

var (
	// ErrTooManyPoints indicates a count larger than the label alphabet.
	ErrTooManyPoints = errors.New("dataset: count exceeds label alphabet")

	// ErrEmptyDataset indicates a dataset (or requested count) with no points.
	ErrEmptyDataset = errors.New("dataset: no points")

	// ErrValueRange indicates a value outside [MinValue, MaxValue].
	ErrValueRange = errors.New("dataset: value out of range")

	// ErrDuplicateLabel indicates two points sharing a label.
	ErrDuplicateLabel = errors.New("dataset: duplicate label")

	// ErrUnknownSortMode indicates a sort mode string that does not parse.
	ErrUnknownSortMode = errors.New("dataset: unknown sort mode")
)
