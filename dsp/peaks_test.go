package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPeaksSimple(t *testing.T) {
	x := []float64{0, 1, 0, 2, 0, 3, 0}
	peaks := FindPeaks(x, 1, 0)
	assert.Equal(t, []int{1, 3, 5}, peaks)
}

func TestFindPeaksDistanceSuppression(t *testing.T) {
	// the taller peak wins regardless of order of appearance
	x := []float64{0, 1, 0, 0, 5, 0}
	assert.Equal(t, []int{4}, FindPeaks(x, 4, 0))

	x = []float64{0, 5, 0, 0, 1, 0}
	assert.Equal(t, []int{1}, FindPeaks(x, 4, 0))

	// far enough apart, both stay
	x = []float64{0, 1, 0, 0, 0, 0, 5, 0}
	assert.Equal(t, []int{1, 6}, FindPeaks(x, 4, 0))
}

func TestFindPeaksProminence(t *testing.T) {
	// the middle bump only rises 0.5 above its saddle
	x := []float64{0, 3, 2.5, 3.0 - 1e-9, 2.5, 3, 0}
	peaks := FindPeaks(x, 1, 1.0)
	assert.Equal(t, []int{1, 5}, peaks)

	peaks = FindPeaks(x, 1, 0.25)
	assert.Equal(t, []int{1, 3, 5}, peaks)
}

func TestFindPeaksPlateau(t *testing.T) {
	x := []float64{0, 1, 2, 2, 2, 1, 0}
	assert.Equal(t, []int{3}, FindPeaks(x, 1, 0))
}

func TestFindPeaksNone(t *testing.T) {
	assert.Empty(t, FindPeaks([]float64{0, 1, 2, 3, 4}, 1, 0))
	assert.Empty(t, FindPeaks([]float64{4, 3, 2, 1, 0}, 1, 0))
	assert.Empty(t, FindPeaks(nil, 1, 0))
	assert.Empty(t, FindPeaks([]float64{1, 1, 1, 1}, 1, 0))
}

func TestFindPeaksRefractorySpacing(t *testing.T) {
	// all detected beats respect the minimum spacing on a noisy-ish
	// periodic signal
	const fs = 128.0
	x := make([]float64, 1280)
	for i := range x {
		ti := float64(i) / fs
		x[i] = math.Sin(2*math.Pi*1.2*ti) + 0.2*math.Sin(2*math.Pi*7*ti)
	}

	minDist := int(0.25 * fs)
	peaks := FindPeaks(x, minDist, 0.5)
	require.NotEmpty(t, peaks)
	for i := 1; i < len(peaks); i++ {
		assert.GreaterOrEqual(t, peaks[i]-peaks[i-1], minDist)
	}
}
