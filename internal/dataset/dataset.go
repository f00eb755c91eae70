package dataset

import (
	"fmt"
	"math"
)

const (
	MinValue = 5.0
	MaxValue = 100.0

	// DefaultCount is the number of bars in a fresh dataset.
	DefaultCount = 10
)

// Labels is the fixed alphabet points are named from, in order.
var Labels = []string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J",
	"K", "L", "M", "N", "O", "P", "Q", "R", "S", "T",
}

type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Dataset []Point

func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	c := make(Dataset, len(d))
	copy(c, d)
	return c
}

// Max returns the largest value, or 0 for an empty dataset.
func (d Dataset) Max() float64 {
	if len(d) == 0 {
		return 0
	}
	m := d[0].Value
	for _, p := range d[1:] {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

// Equal reports whether both datasets hold the same points in the same order.
func (d Dataset) Equal(o Dataset) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i] != o[i] {
			return false
		}
	}
	return true
}

func (d Dataset) Validate() error {
	if len(d) == 0 {
		return ErrEmptyDataset
	}
	seen := make(map[string]struct{}, len(d))
	for _, p := range d {
		if p.Label == "" {
			return fmt.Errorf("empty label: %w", ErrDuplicateLabel)
		}
		if _, ok := seen[p.Label]; ok {
			return fmt.Errorf("label %q: %w", p.Label, ErrDuplicateLabel)
		}
		seen[p.Label] = struct{}{}
		if math.IsNaN(p.Value) || p.Value < MinValue || p.Value > MaxValue {
			return fmt.Errorf("label %q value %.2f: %w", p.Label, p.Value, ErrValueRange)
		}
	}
	return nil
}

// Clamp bounds v to [MinValue, MaxValue].
func Clamp(v float64) float64 {
	return math.Max(MinValue, math.Min(MaxValue, v))
}
