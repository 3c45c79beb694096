/*
Package analysis implements the region-of-interest analysis engine for
co-recorded PPG and ECG waveforms. An Analyzer holds a small amount of
session configuration (sampling rate and ROI bounds); AnalyzeROI is a
stateless-per-call transform from raw sample arrays to an
model.ROIResult of synchronization metrics.

Analyzers are not safe to share across concurrent analyses with
independent ROIs or sampling rates; each logical session should own its
own instance.
*/
package analysis

import (
	"math"

	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/dsp"
	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/model"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidRange rejects ROIs whose end does not strictly follow
	// their start.
	ErrInvalidRange = errors.New("roi end must be strictly greater than roi start")

	// ErrNoROIConfigured marks analysis attempted before SetROI
	// succeeded.
	ErrNoROIConfigured = errors.New("no roi configured")
)

// Band limits and detector constraints. The ECG band brackets the QRS
// complex; the PPG band brackets plausible pulse rates. Detector
// spacing models the physiological refractory period, and the looser
// PPG prominence reflects its smoother pulse morphology.
const (
	ecgBandLowHz  = 5.0
	ecgBandHighHz = 15.0
	ppgBandLowHz  = 0.5
	ppgBandHighHz = 5.0

	ecgMinSpacingSeconds = 0.25
	ecgMinProminence     = 1.0
	ppgMinSpacingSeconds = 0.30
	ppgMinProminence     = 0.3
)

// Analyzer carries the per-session configuration for ROI analyses.
type Analyzer struct {
	samplingRate float64
	roiStart     *float64
	roiEnd       *float64
}

// NewAnalyzer returns an analyzer with the given sampling rate and no
// ROI configured.
func NewAnalyzer(fs float64) (*Analyzer, error) {
	a := &Analyzer{}
	if err := a.SetSamplingRate(fs); err != nil {
		return nil, err
	}
	return a, nil
}

// SamplingRate returns the configured sampling rate in Hz.
func (a *Analyzer) SamplingRate() float64 { return a.samplingRate }

// SetSamplingRate replaces the sampling rate.
func (a *Analyzer) SetSamplingRate(fs float64) error {
	if fs <= 0 || math.IsNaN(fs) || math.IsInf(fs, 0) {
		return errors.Errorf("sampling rate must be a positive finite value, got %f", fs)
	}
	a.samplingRate = fs
	return nil
}

// SetROI stores the analysis window in seconds, overwriting any prior
// ROI. On failure the previous ROI, if any, is left in place.
func (a *Analyzer) SetROI(start, end float64) error {
	if end <= start {
		return errors.Wrapf(ErrInvalidRange, "got [%f, %f)", start, end)
	}
	a.roiStart = &start
	a.roiEnd = &end
	return nil
}

// ROI returns the configured bounds; ok is false when no ROI is set.
func (a *Analyzer) ROI() (start, end float64, ok bool) {
	if a.roiStart == nil || a.roiEnd == nil {
		return 0, 0, false
	}
	return *a.roiStart, *a.roiEnd, true
}

// ExtractROI returns the sub-sequence of signal covered by the
// configured ROI. Bounds are converted to sample indices by truncation
// and clamped to the signal, so a window that only partially overlaps
// the recording silently shortens rather than failing.
func (a *Analyzer) ExtractROI(signal []float64) ([]float64, error) {
	start, end, ok := a.ROI()
	if !ok {
		return nil, errors.WithStack(ErrNoROIConfigured)
	}
	return extractWindow(signal, start, end, a.samplingRate), nil
}

func extractWindow(signal []float64, start, end, fs float64) []float64 {
	startIdx := int(start * fs)
	endIdx := int(end * fs)

	if startIdx < 0 {
		startIdx = 0
	}
	if endIdx > len(signal) {
		endIdx = len(signal)
	}
	if startIdx >= endIdx {
		return []float64{}
	}
	return signal[startIdx:endIdx]
}

// AlignSignals truncates both inputs to the shorter length so they can
// be compared sample for sample. No interpolation is performed.
func (a *Analyzer) AlignSignals(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	return x[:n], y[:n]
}

// Bandpass applies a zero-phase Butterworth band-pass at the session
// sampling rate.
func (a *Analyzer) Bandpass(x []float64, lowHz, highHz float64) ([]float64, error) {
	return bandpassSegment(x, lowHz, highHz, a.samplingRate)
}

func bandpassSegment(x []float64, lowHz, highHz, fs float64) ([]float64, error) {
	b, den, err := dsp.Bandpass(dsp.DefaultFilterOrder, lowHz, highHz, fs)
	if err != nil {
		return nil, errors.Wrap(err, "problem designing band-pass filter")
	}

	out, err := dsp.FiltFilt(b, den, x)
	if err != nil {
		return nil, errors.Wrap(err, "problem applying zero-phase filter")
	}
	return out, nil
}

// AnalyzeROI runs the full conditioning, feature extraction, and
// metric pipeline over the configured ROI and assembles the result. It
// works on a snapshot of the session configuration taken at entry.
// Metrics that cannot be computed from the detected events are
// reported as absent rather than failing the call; the only hard
// failures are a missing ROI and a sampling rate or segment that the
// requested filtering cannot operate on.
func (a *Analyzer) AnalyzeROI(t, ppg, ecg []float64, opts model.AnalyzeOptions) (*model.ROIResult, error) {
	start, end, ok := a.ROI()
	if !ok {
		return nil, errors.WithStack(ErrNoROIConfigured)
	}
	fs := a.samplingRate

	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid analysis options")
	}

	tROI := extractWindow(t, start, end, fs)
	ppgROI := extractWindow(ppg, start, end, fs)
	ecgROI := extractWindow(ecg, start, end, fs)

	if opts.Detrend {
		ppgROI = dsp.Detrend(ppgROI)
		ecgROI = dsp.Detrend(ecgROI)
	}

	ppgF, ecgF := ppgROI, ecgROI
	var err error
	if opts.FiltersPPG() {
		ppgF, err = bandpassSegment(ppgROI, ppgBandLowHz, ppgBandHighHz, fs)
		if err != nil {
			return nil, errors.Wrap(err, "problem filtering ppg segment")
		}
	}
	if opts.FiltersECG() {
		ecgF, err = bandpassSegment(ecgROI, ecgBandLowHz, ecgBandHighHz, fs)
		if err != nil {
			return nil, errors.Wrap(err, "problem filtering ecg segment")
		}
	}

	rIdx := DetectECGRPeaks(ecgF, fs)
	ppgIdx := DetectPPGPeaks(ppgF, fs)

	hrBPM, rrMean, rrSD := ComputeHR(rIdx, fs)
	pttMean, pttSD := summarize(MapPTT(rIdx, ppgIdx, fs))

	ppgCut, ecgCut := a.AlignSignals(ppgF, ecgF)
	delay := DelayByXCorr(ecgCut, ppgCut, fs)

	sqi := ComputeSQI(ppgF)

	grip.Debug(message.Fields{
		"op":        "analyze_roi",
		"roi_start": start,
		"roi_end":   end,
		"fs":        fs,
		"n_samples": len(tROI),
		"mode":      opts.FilterMode,
		"r_peaks":   len(rIdx),
		"ppg_peaks": len(ppgIdx),
	})

	return &model.ROIResult{
		StartSeconds:      start,
		EndSeconds:        end,
		NumSamples:        len(tROI),
		SamplingRate:      fs,
		HeartRateBPM:      hrBPM,
		RRMeanSeconds:     rrMean,
		RRSDSeconds:       rrSD,
		PTTMeanSeconds:    pttMean,
		PTTSDSeconds:      pttSD,
		DelayXCorrSeconds: delay,
		SQI:               sqi,
	}, nil
}

// DetectECGRPeaks finds R-peak indices in a conditioned ECG segment.
// The segment is z-scored first, so the prominence constraint is in
// z-score units.
func DetectECGRPeaks(ecg []float64, fs float64) []int {
	return dsp.FindPeaks(dsp.ZScore(ecg), int(ecgMinSpacingSeconds*fs), ecgMinProminence)
}

// DetectPPGPeaks finds pulse-peak indices in a conditioned PPG
// segment.
func DetectPPGPeaks(ppg []float64, fs float64) []int {
	return dsp.FindPeaks(dsp.ZScore(ppg), int(ppgMinSpacingSeconds*fs), ppgMinProminence)
}
