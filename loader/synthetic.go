package loader

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// SyntheticOptions shapes a generated recording. Zero values fall back
// to a 10 second, 128 Hz recording with a fixed seed.
type SyntheticOptions struct {
	DurationSeconds float64
	SamplingRate    float64
	Seed            int64
	NoiseLevel      float64
}

const defaultSyntheticNoise = 0.05

// NewSyntheticRecording builds a deterministic dummy recording: the
// PPG is a pair of sinusoids at pulse-rate harmonics, the ECG a
// phase-led sinusoid plus a narrow once-per-beat spike standing in for
// the QRS complex, both with a little Gaussian noise. The same seed
// always reproduces the same recording.
func NewSyntheticRecording(opts SyntheticOptions) (*Recording, error) {
	if opts.DurationSeconds == 0 {
		opts.DurationSeconds = 10
	}
	if opts.SamplingRate == 0 {
		opts.SamplingRate = 128
	}
	if opts.NoiseLevel == 0 {
		opts.NoiseLevel = defaultSyntheticNoise
	}
	if opts.DurationSeconds < 0 || opts.SamplingRate <= 0 || opts.NoiseLevel < 0 {
		return nil, errors.Errorf("degenerate synthetic options: duration=%f fs=%f noise=%f",
			opts.DurationSeconds, opts.SamplingRate, opts.NoiseLevel)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	n := int(opts.DurationSeconds * opts.SamplingRate)

	rec := &Recording{
		T:   make([]float64, n),
		PPG: make([]float64, n),
		ECG: make([]float64, n),
		FS:  opts.SamplingRate,
	}

	for i := 0; i < n; i++ {
		t := float64(i) / opts.SamplingRate
		rec.T[i] = t

		rec.PPG[i] = 0.6*math.Sin(2*math.Pi*1.2*t) +
			0.3*math.Sin(2*math.Pi*2.4*t) +
			opts.NoiseLevel*rng.NormFloat64()

		spike := 0.0
		if math.Mod(t, 1.0) < 0.02 {
			spike = 0.6
		}
		rec.ECG[i] = 0.4*math.Sin(2*math.Pi*1.0*t+0.4) + spike +
			opts.NoiseLevel*rng.NormFloat64()
	}

	return rec, nil
}
