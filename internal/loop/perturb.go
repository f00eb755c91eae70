package loop

import (
	"math/rand"

	"github.com/san-kum/barviz/internal/dataset"
)

// MaxStep bounds the per-tick change of a single value.
const MaxStep = 5.0

// Perturb nudges every value in place by an independent delta uniform in
// [-MaxStep, MaxStep] and clamps the result to the dataset range.
func Perturb(d dataset.Dataset, rng *rand.Rand) {
	for i := range d {
		sign := 1.0
		if rng.Float64() <= 0.5 {
			sign = -1
		}
		d[i].Value = dataset.Clamp(d[i].Value + sign*MaxStep*rng.Float64())
	}
}
