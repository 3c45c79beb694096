package dsp

// XCorr computes the full cross-correlation of a against b over every
// integer lag from -(len(b)-1) to len(a)-1. The returned slice has
// length len(a)+len(b)-1 and index i corresponds to lag i-(len(b)-1):
// out[i] = sum over m of a[m+lag]*b[m]. A positive argmax lag means a
// is a delayed copy of b.
func XCorr(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	out := make([]float64, len(a)+len(b)-1)
	for i := range out {
		lag := i - (len(b) - 1)

		m := 0
		if lag < 0 {
			m = -lag
		}
		end := len(b)
		if len(a)-lag < end {
			end = len(a) - lag
		}

		var sum float64
		for ; m < end; m++ {
			sum += a[m+lag] * b[m]
		}
		out[i] = sum
	}
	return out
}

// XCorrLag returns the lag, in samples, at which the cross-correlation
// of a against b peaks. Positive means a lags (arrives after) b.
func XCorrLag(a, b []float64) int {
	corr := XCorr(a, b)
	if len(corr) == 0 {
		return 0
	}

	best := 0
	for i, v := range corr {
		if v > corr[best] {
			best = i
		}
	}
	return best - (len(b) - 1)
}
