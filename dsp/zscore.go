package dsp

import "github.com/montanaflynn/stats"

// stdFloor is the smallest standard deviation treated as nonzero when
// normalizing; flatter segments z-score to all zeros instead of
// dividing by a vanishing constant.
const stdFloor = 1e-12

// ZScore returns (x - mean(x)) / std(x) using the population standard
// deviation. A perfectly flat segment maps to all zeros.
func ZScore(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	data := stats.Float64Data(x)
	mean, err := data.Mean()
	if err != nil {
		copy(out, x)
		return out
	}

	sd, err := data.StandardDeviation()
	if err != nil || sd <= stdFloor {
		sd = 1.0
	}

	for i, v := range x {
		out[i] = (v - mean) / sd
	}

	return out
}
