/*
Package dsp implements the signal conditioning primitives used by the
ROI analysis engine: linear detrending, zero-phase Butterworth band-pass
filtering, rational-ratio polyphase resampling, z-score normalization,
constrained peak detection, and full cross-correlation.

All functions operate on uniformly sampled float64 sequences and return
fresh slices; inputs are never modified in place.
*/
package dsp

// Detrend removes the least-squares straight line fit from x. Segments
// shorter than two samples are returned unchanged (copied), since no
// trend is defined for them.
func Detrend(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if len(x) < 2 {
		return out
	}

	n := float64(len(x))

	// slope and intercept of the least-squares line over t = 0..n-1
	var sumT, sumX, sumTT, sumTX float64
	for i, v := range x {
		t := float64(i)
		sumT += t
		sumX += v
		sumTT += t * t
		sumTX += t * v
	}

	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return out
	}

	slope := (n*sumTX - sumT*sumX) / denom
	intercept := (sumX - slope*sumT) / n

	for i := range out {
		out[i] -= intercept + slope*float64(i)
	}

	return out
}
