/*
Package loader ingests co-recorded PPG/ECG waveforms from CSV and EDF
files, generates synthetic recordings for testing and demos, and
exports region-of-interest segments. It hands the analysis engine plain
numeric arrays plus a sampling rate; all format sniffing and column or
channel auto-detection lives here, never in the engine.
*/
package loader

import (
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// Recording is an in-memory pair of co-recorded waveforms sampled at a
// common rate, with a time axis aligned at index 0.
type Recording struct {
	T   []float64
	PPG []float64
	ECG []float64
	FS  float64
}

// Validate checks internal consistency: equal array lengths, a
// positive sampling rate, and at least one sample.
func (r *Recording) Validate() error {
	catcher := grip.NewBasicCatcher()

	if r.FS <= 0 {
		catcher.Add(errors.Errorf("sampling rate must be positive, got %f", r.FS))
	}
	if len(r.T) == 0 {
		catcher.Add(errors.New("recording has no samples"))
	}
	if len(r.T) != len(r.PPG) || len(r.T) != len(r.ECG) {
		catcher.Add(errors.Errorf("array lengths disagree: t=%d ppg=%d ecg=%d",
			len(r.T), len(r.PPG), len(r.ECG)))
	}

	return catcher.Resolve()
}

// Duration returns the covered time span in seconds.
func (r *Recording) Duration() float64 {
	if r.FS <= 0 {
		return 0
	}
	return float64(len(r.T)) / r.FS
}

// truncate shortens all three arrays to n samples.
func (r *Recording) truncate(n int) {
	if n < len(r.T) {
		r.T = r.T[:n]
	}
	if n < len(r.PPG) {
		r.PPG = r.PPG[:n]
	}
	if n < len(r.ECG) {
		r.ECG = r.ECG[:n]
	}
}

// timeAxis builds the implied time axis index/fs for n samples.
func timeAxis(n int, fs float64) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) / fs
	}
	return t
}
