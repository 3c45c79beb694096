package dsp

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
)

// DefaultFilterOrder is the Butterworth order used by the analysis
// engine unless a caller asks otherwise.
const DefaultFilterOrder = 4

// Bandpass designs digital Butterworth band-pass filter coefficients
// for the given order and corner frequencies in Hz. The design follows
// the usual analog-prototype, low-pass to band-pass transform, bilinear
// transform sequence. Corner frequencies must lie strictly inside
// (0, fs/2).
func Bandpass(order int, lowHz, highHz, fs float64) (b, a []float64, err error) {
	if order < 1 {
		return nil, nil, errors.Errorf("filter order must be positive, got %d", order)
	}
	if fs <= 0 {
		return nil, nil, errors.Errorf("sampling rate must be positive, got %f", fs)
	}

	nyq := 0.5 * fs
	if lowHz <= 0 || highHz >= nyq || lowHz >= highHz {
		return nil, nil, errors.Errorf(
			"band edges (%f, %f) Hz must satisfy 0 < low < high < nyquist (%f)",
			lowHz, highHz, nyq)
	}

	// Pre-warp the normalized band edges for the bilinear transform,
	// using an internal sampling rate of 2.
	warpedLow := 4.0 * math.Tan(math.Pi*(lowHz/nyq)/2.0)
	warpedHigh := 4.0 * math.Tan(math.Pi*(highHz/nyq)/2.0)

	bw := warpedHigh - warpedLow
	wo := math.Sqrt(warpedLow * warpedHigh)

	// Analog Butterworth low-pass prototype: poles evenly spaced on the
	// left half of the unit circle, unit gain, no zeros.
	proto := make([]complex128, 0, order)
	for m := -order + 1; m < order; m += 2 {
		proto = append(proto, -cmplx.Exp(complex(0, math.Pi*float64(m)/float64(2*order))))
	}

	// Low-pass to band-pass: each prototype pole becomes a conjugate
	// pair, and the N zeros land at the origin.
	poles := make([]complex128, 0, 2*order)
	for _, p := range proto {
		scaled := p * complex(bw/2.0, 0)
		shift := cmplx.Sqrt(scaled*scaled - complex(wo*wo, 0))
		poles = append(poles, scaled+shift, scaled-shift)
	}
	zeros := make([]complex128, order) // all at 0
	gain := math.Pow(bw, float64(order))

	// Bilinear transform back to the digital domain (fs = 2).
	const fs2x2 = 4.0
	digZeros := make([]complex128, 0, 2*order)
	digPoles := make([]complex128, 0, 2*order)
	num := complex(1, 0)
	den := complex(1, 0)
	for _, z := range zeros {
		digZeros = append(digZeros, (fs2x2+z)/(fs2x2-z))
		num *= fs2x2 - z
	}
	for _, p := range poles {
		digPoles = append(digPoles, (fs2x2+p)/(fs2x2-p))
		den *= fs2x2 - p
	}
	// Degree difference maps extra zeros to z = -1.
	for i := len(zeros); i < len(poles); i++ {
		digZeros = append(digZeros, -1)
	}
	digGain := gain * real(num/den)

	b = polyFromRoots(digZeros)
	a = polyFromRoots(digPoles)
	for i := range b {
		b[i] *= digGain
	}

	return b, a, nil
}

// polyFromRoots expands a polynomial with the given roots into real
// coefficients, highest degree first. Complex roots are expected in
// conjugate pairs so the imaginary parts cancel.
func polyFromRoots(roots []complex128) []float64 {
	coeffs := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}

	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = real(c)
	}
	return out
}
