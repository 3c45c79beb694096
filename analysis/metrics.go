package analysis

import (
	"github.com/evergreen-ci/utility"
	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/dsp"
	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/model"
	"github.com/montanaflynn/stats"
)

// maxPlausiblePTTSeconds bounds the accepted R-peak to pulse-arrival
// interval; pairings outside (0, 1.5) seconds are physiologically
// implausible and discarded.
const maxPlausiblePTTSeconds = 1.5

// ComputeHR derives heart rate and RR-interval statistics from an
// ascending peak index sequence. All three values are absent (nil)
// when fewer than two peaks were detected; the rate alone is absent if
// the mean interval degenerates to zero.
func ComputeHR(peaks []int, fs float64) (hrBPM, rrMeanSeconds, rrSDSeconds *float64) {
	if len(peaks) < 2 {
		return nil, nil, nil
	}

	rr := make(stats.Float64Data, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		rr[i-1] = float64(peaks[i]-peaks[i-1]) / fs
	}

	mean, err := rr.Mean()
	if err != nil {
		return nil, nil, nil
	}
	sd, err := rr.StandardDeviation()
	if err != nil {
		return nil, nil, nil
	}

	rrMeanSeconds = utility.ToFloat64Ptr(mean)
	rrSDSeconds = utility.ToFloat64Ptr(sd)
	if mean > 0 {
		hrBPM = utility.ToFloat64Ptr(60.0 / mean)
	}
	return hrBPM, rrMeanSeconds, rrSDSeconds
}

// MapPTT pairs each ECG R-peak with the next PPG pulse peak using a
// forward-only sweep over the two ascending index sequences, and
// returns the accepted transit times in seconds. A pairing is accepted
// only when it falls strictly inside (0, maxPlausiblePTTSeconds).
func MapPTT(rPeaks, ppgPeaks []int, fs float64) []float64 {
	if len(rPeaks) == 0 || len(ppgPeaks) == 0 {
		return nil
	}

	ptts := []float64{}
	j := 0
	for _, r := range rPeaks {
		for j < len(ppgPeaks) && ppgPeaks[j] <= r {
			j++
		}
		if j >= len(ppgPeaks) {
			break
		}

		ptt := float64(ppgPeaks[j]-r) / fs
		if ptt > 0 && ptt < maxPlausiblePTTSeconds {
			ptts = append(ptts, ptt)
		}
	}
	return ptts
}

// DelayByXCorr estimates how far the candidate signal y trails the
// reference x, in seconds, as the argmax lag of their full normalized
// cross-correlation. Positive means y arrives later. With ECG as the
// reference and PPG as the candidate this is the inter-signal delay.
func DelayByXCorr(x, y []float64, fs float64) float64 {
	if len(x) == 0 || len(y) == 0 || fs <= 0 {
		return 0
	}
	lag := dsp.XCorrLag(dsp.ZScore(y), dsp.ZScore(x))
	return float64(lag) / fs
}

// ComputeSQI reports heuristic quality indices for a conditioned
// segment: the fraction of samples within 1% of the range extremes
// (saturation, rail-to-rail clipping), the fraction of near-zero
// sample-to-sample differences (flatness, a dead sensor), and a
// variance-over-roughness ratio that grows with smooth high-amplitude
// content (snr_like, not a true SNR).
func ComputeSQI(x []float64) map[string]float64 {
	sqi := map[string]float64{
		model.SQISaturation: 0,
		model.SQIFlatness:   0,
		model.SQISNRLike:    0,
	}
	if len(x) == 0 {
		return sqi
	}

	data := stats.Float64Data(x)
	min, err := data.Min()
	if err != nil {
		return sqi
	}
	max, _ := data.Max()
	rng := max - min + 1e-9

	saturated := 0
	for _, v := range x {
		if v > max-0.01*rng || v < min+0.01*rng {
			saturated++
		}
	}
	sqi[model.SQISaturation] = float64(saturated) / float64(len(x))

	if len(x) > 1 {
		flat := 0
		var absDiffSum float64
		for i := 1; i < len(x); i++ {
			d := x[i] - x[i-1]
			if d < 0 {
				d = -d
			}
			if d < 1e-4 {
				flat++
			}
			absDiffSum += d
		}
		sqi[model.SQIFlatness] = float64(flat) / float64(len(x)-1)

		variance, err := data.Variance()
		if err == nil {
			meanAbsDiff := absDiffSum / float64(len(x)-1)
			sqi[model.SQISNRLike] = variance / (meanAbsDiff + 1e-9)
		}
	}

	return sqi
}

func summarize(vals []float64) (mean, sd *float64) {
	if len(vals) == 0 {
		return nil, nil
	}

	data := stats.Float64Data(vals)
	m, err := data.Mean()
	if err != nil {
		return nil, nil
	}
	s, err := data.StandardDeviation()
	if err != nil {
		return nil, nil
	}
	return utility.ToFloat64Ptr(m), utility.ToFloat64Ptr(s)
}
