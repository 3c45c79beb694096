package dsp

import (
	"math"

	"github.com/pkg/errors"
)

// rateEpsilon is the tolerance in Hz under which two sampling rates
// are treated as equal and resampling becomes a copy.
const rateEpsilon = 1e-6

// Resample converts x from origFs to targetFs by polyphase filtering at
// a rational ratio. The rates are rounded to integers and reduced by
// their greatest common divisor first, so repeated conversions do not
// accumulate floating-point rate drift.
func Resample(x []float64, origFs, targetFs float64) ([]float64, error) {
	if origFs <= 0 || targetFs <= 0 {
		return nil, errors.Errorf("sampling rates must be positive, got %f -> %f", origFs, targetFs)
	}

	if math.Abs(origFs-targetFs) < rateEpsilon {
		out := make([]float64, len(x))
		copy(out, x)
		return out, nil
	}

	up := int(math.Round(targetFs))
	down := int(math.Round(origFs))
	if up < 1 || down < 1 {
		return nil, errors.Errorf("rates %f -> %f round to a degenerate ratio", origFs, targetFs)
	}

	g := gcd(up, down)
	up /= g
	down /= g

	return upfirdn(x, up, down), nil
}

// upfirdn upsamples by up, applies an anti-aliasing windowed-sinc
// low-pass, and downsamples by down, evaluating only the output
// samples that survive decimation.
func upfirdn(x []float64, up, down int) []float64 {
	h := resampleFIR(up, down)
	delay := (len(h) - 1) / 2

	nOut := (len(x)*up + down - 1) / down
	out := make([]float64, nOut)

	for m := 0; m < nOut; m++ {
		// center of the filter over the zero-stuffed stream
		pos := m*down + delay

		// only every up-th stuffed sample is nonzero
		k := pos % up
		for ; k < len(h); k += up {
			i := (pos - k) / up
			if i < 0 {
				break
			}
			if i < len(x) {
				out[m] += h[k] * x[i]
			}
		}
	}

	return out
}

// resampleFIR designs the low-pass kernel for a rational up/down
// conversion: a Hamming-windowed sinc with cutoff at the tighter of
// the two Nyquist bounds, scaled by up to preserve amplitude through
// zero stuffing.
func resampleFIR(up, down int) []float64 {
	maxRate := up
	if down > maxRate {
		maxRate = down
	}

	// cutoff as a fraction of the zero-stuffed Nyquist
	cutoff := 1.0 / float64(maxRate)
	halfLen := 10 * maxRate
	n := 2*halfLen + 1

	h := make([]float64, n)
	for i := 0; i < n; i++ {
		t := float64(i - halfLen)
		h[i] = sinc(cutoff*t) * cutoff * hamming(i, n)
	}

	// normalize DC gain to up so amplitudes survive zero stuffing
	var sum float64
	for _, v := range h {
		sum += v
	}
	scale := float64(up) / sum
	for i := range h {
		h[i] *= scale
	}

	return h
}

func sinc(t float64) float64 {
	if t == 0 {
		return 1
	}
	return math.Sin(math.Pi*t) / (math.Pi * t)
}

func hamming(i, n int) float64 {
	return 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
