package dataset

import (
	"fmt"
	"sort"
	"strings"
)

type SortMode int

const (
	SortNone SortMode = iota
	SortAscending
	SortDescending
)

var sortModeNames = []string{"none", "ascending", "descending"}

func (m SortMode) String() string {
	if m < 0 || int(m) >= len(sortModeNames) {
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
	return sortModeNames[m]
}

// Next cycles none -> ascending -> descending -> none.
func (m SortMode) Next() SortMode {
	return (m + 1) % SortMode(len(sortModeNames))
}

// ParseSortMode accepts the mode names and the short forms asc/desc.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "ascending", "asc":
		return SortAscending, nil
	case "descending", "desc":
		return SortDescending, nil
	}
	return SortNone, fmt.Errorf("%q: %w", s, ErrUnknownSortMode)
}

// SortModeNames lists the canonical mode names.
func SortModeNames() []string {
	names := make([]string, len(sortModeNames))
	copy(names, sortModeNames)
	return names
}

// Sort returns d ordered by value. SortNone returns d itself; the other modes
// return a stable-sorted copy and never modify d.
func Sort(d Dataset, mode SortMode) Dataset {
	if mode == SortNone {
		return d
	}
	out := d.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		if mode == SortDescending {
			return out[i].Value > out[j].Value
		}
		return out[i].Value < out[j].Value
	})
	return out
}
