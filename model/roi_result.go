package model

import "github.com/evergreen-ci/utility"

// Keys of the per-signal quality indices reported in ROIResult.SQI.
const (
	SQISaturation = "saturation"
	SQIFlatness   = "flatness"
	SQISNRLike    = "snr_like"
)

// ROIResult captures the outcome of one region-of-interest analysis.
// Fields typed as pointers are optional: nil means too few events were
// detected to compute the value, which callers must distinguish from a
// legitimate zero. The record is owned by the caller and holds no
// reference back to the analyzer that produced it.
type ROIResult struct {
	StartSeconds float64 `json:"start_s" yaml:"start_s"`
	EndSeconds   float64 `json:"end_s" yaml:"end_s"`
	NumSamples   int     `json:"n_samples" yaml:"n_samples"`
	SamplingRate float64 `json:"fs" yaml:"fs"`

	HeartRateBPM  *float64 `json:"hr_bpm" yaml:"hr_bpm"`
	RRMeanSeconds *float64 `json:"rr_mean_s" yaml:"rr_mean_s"`
	RRSDSeconds   *float64 `json:"rr_sd_s" yaml:"rr_sd_s"`

	PTTMeanSeconds *float64 `json:"ptt_mean_s" yaml:"ptt_mean_s"`
	PTTSDSeconds   *float64 `json:"ptt_sd_s" yaml:"ptt_sd_s"`

	DelayXCorrSeconds float64 `json:"delay_xcorr_s" yaml:"delay_xcorr_s"`

	SQI map[string]float64 `json:"sqi" yaml:"sqi"`
}

// HasHeartRate reports whether the RR-interval derived fields are
// populated.
func (r *ROIResult) HasHeartRate() bool { return r.HeartRateBPM != nil }

// HasPTT reports whether any physiologically plausible R-peak to pulse
// pairings survived.
func (r *ROIResult) HasPTT() bool { return r.PTTMeanSeconds != nil }

// HeartRateOrZero is a convenience accessor for display paths that
// want a plain value; prefer HasHeartRate for correctness sensitive
// callers.
func (r *ROIResult) HeartRateOrZero() float64 {
	return utility.FromFloat64Ptr(r.HeartRateBPM)
}
