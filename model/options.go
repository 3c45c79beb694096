package model

// Filter modes accepted by the analysis engine. Anything else acts as
// FilterModeOff.
const (
	FilterModeDefault = "default"
	FilterModePPGECG  = "ppg_ecg"
	FilterModePPGOnly = "ppg_only"
	FilterModeOff     = "off"
)

// AnalyzeOptions selects the conditioning applied ahead of feature
// extraction for one analysis call.
type AnalyzeOptions struct {
	Detrend    bool   `json:"detrend" yaml:"detrend"`
	FilterMode string `json:"filter_mode" yaml:"filter_mode"`
}

// DefaultAnalyzeOptions mirrors the conditioning applied when a caller
// expresses no preference: detrend and band-pass both signals.
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		Detrend:    true,
		FilterMode: FilterModeDefault,
	}
}

// Validate normalizes the filter mode. Unrecognized modes select no
// filtering rather than failing, so a stale caller never loses the
// rest of the analysis.
func (o *AnalyzeOptions) Validate() error {
	switch o.FilterMode {
	case FilterModeDefault, FilterModePPGECG, FilterModePPGOnly, FilterModeOff:
	case "":
		o.FilterMode = FilterModeDefault
	default:
		o.FilterMode = FilterModeOff
	}
	return nil
}

// FiltersECG reports whether the mode band-passes the ECG channel.
func (o AnalyzeOptions) FiltersECG() bool {
	return o.FilterMode == FilterModeDefault || o.FilterMode == FilterModePPGECG
}

// FiltersPPG reports whether the mode band-passes the PPG channel.
func (o AnalyzeOptions) FiltersPPG() bool {
	return o.FiltersECG() || o.FilterMode == FilterModePPGOnly
}
