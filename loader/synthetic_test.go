package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticRecordingDefaults(t *testing.T) {
	rec, err := NewSyntheticRecording(SyntheticOptions{})
	require.NoError(t, err)
	require.NoError(t, rec.Validate())

	assert.Len(t, rec.T, 1280)
	assert.Equal(t, 128.0, rec.FS)
	assert.InDelta(t, 10.0, rec.Duration(), 1e-9)
}

func TestSyntheticRecordingDeterministic(t *testing.T) {
	a, err := NewSyntheticRecording(SyntheticOptions{Seed: 7})
	require.NoError(t, err)
	b, err := NewSyntheticRecording(SyntheticOptions{Seed: 7})
	require.NoError(t, err)
	assert.Equal(t, a.PPG, b.PPG)
	assert.Equal(t, a.ECG, b.ECG)

	c, err := NewSyntheticRecording(SyntheticOptions{Seed: 8})
	require.NoError(t, err)
	assert.NotEqual(t, a.PPG, c.PPG)
}

func TestSyntheticRecordingRejectsDegenerateOptions(t *testing.T) {
	for _, opts := range []SyntheticOptions{
		{DurationSeconds: -1},
		{SamplingRate: -128},
		{NoiseLevel: -0.1},
	} {
		_, err := NewSyntheticRecording(opts)
		assert.Error(t, err)
	}
}

func TestRecordingValidate(t *testing.T) {
	rec := &Recording{
		T:   []float64{0, 1},
		PPG: []float64{0, 1},
		ECG: []float64{0, 1},
		FS:  1,
	}
	assert.NoError(t, rec.Validate())

	rec.ECG = rec.ECG[:1]
	assert.Error(t, rec.Validate())

	rec = &Recording{FS: -1}
	assert.Error(t, rec.Validate())
}
