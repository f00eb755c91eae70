package dataset

import (
	"fmt"
	"math/rand"
)

// Generate returns count points labeled from [Labels] in order, each with a
// uniformly random integer value in [MinValue, MaxValue].
func Generate(count int, rng *rand.Rand) (Dataset, error) {
	if count < 1 {
		return nil, fmt.Errorf("count %d: %w", count, ErrEmptyDataset)
	}
	if count > len(Labels) {
		return nil, fmt.Errorf("count %d > %d: %w", count, len(Labels), ErrTooManyPoints)
	}
	span := int(MaxValue-MinValue) + 1
	d := make(Dataset, count)
	for i := range d {
		d[i] = Point{
			Label: Labels[i],
			Value: MinValue + float64(rng.Intn(span)),
		}
	}
	return d, nil
}
