package analysis

import (
	"math"
	"testing"

	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalyzer(t *testing.T) {
	a, err := NewAnalyzer(128)
	require.NoError(t, err)
	assert.Equal(t, 128.0, a.SamplingRate())

	for _, fs := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewAnalyzer(fs)
		assert.Error(t, err)
	}
}

func TestSetROIValidation(t *testing.T) {
	a, err := NewAnalyzer(100)
	require.NoError(t, err)

	_, _, ok := a.ROI()
	assert.False(t, ok)

	require.NoError(t, a.SetROI(2.0, 4.0))
	start, end, ok := a.ROI()
	require.True(t, ok)
	assert.Equal(t, 2.0, start)
	assert.Equal(t, 4.0, end)

	// a failing update leaves the previous window intact
	for _, test := range []struct {
		name       string
		start, end float64
	}{
		{name: "EndEqualsStart", start: 1.0, end: 1.0},
		{name: "EndBeforeStart", start: 4.0, end: 2.0},
	} {
		t.Run(test.name, func(t *testing.T) {
			err := a.SetROI(test.start, test.end)
			require.Error(t, err)
			assert.Equal(t, ErrInvalidRange, errors.Cause(err))

			start, end, ok := a.ROI()
			require.True(t, ok)
			assert.Equal(t, 2.0, start)
			assert.Equal(t, 4.0, end)
		})
	}
}

func TestExtractROI(t *testing.T) {
	a, err := NewAnalyzer(100)
	require.NoError(t, err)

	signal := make([]float64, 1000)
	for i := range signal {
		signal[i] = float64(i)
	}

	t.Run("NoROIConfigured", func(t *testing.T) {
		_, err := a.ExtractROI(signal)
		require.Error(t, err)
		assert.Equal(t, ErrNoROIConfigured, errors.Cause(err))
	})
	t.Run("ExactWindow", func(t *testing.T) {
		require.NoError(t, a.SetROI(2.0, 4.0))
		out, err := a.ExtractROI(signal)
		require.NoError(t, err)
		require.Len(t, out, 200)
		assert.Equal(t, 200.0, out[0])
		assert.Equal(t, 399.0, out[len(out)-1])
	})
	t.Run("PartialOverlapTruncates", func(t *testing.T) {
		require.NoError(t, a.SetROI(9.0, 20.0))
		out, err := a.ExtractROI(signal)
		require.NoError(t, err)
		require.Len(t, out, 100)
		assert.Equal(t, 900.0, out[0])
	})
	t.Run("NegativeStartClamps", func(t *testing.T) {
		require.NoError(t, a.SetROI(-1.0, 1.0))
		out, err := a.ExtractROI(signal)
		require.NoError(t, err)
		require.Len(t, out, 100)
		assert.Equal(t, 0.0, out[0])
	})
	t.Run("FullyOutsideIsEmpty", func(t *testing.T) {
		require.NoError(t, a.SetROI(50.0, 60.0))
		out, err := a.ExtractROI(signal)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestAlignSignals(t *testing.T) {
	a, err := NewAnalyzer(100)
	require.NoError(t, err)

	x := []float64{1, 2, 3, 4, 5}
	y := []float64{1, 2, 3}
	ax, ay := a.AlignSignals(x, y)
	assert.Len(t, ax, 3)
	assert.Len(t, ay, 3)

	ax, ay = a.AlignSignals(y, x)
	assert.Len(t, ax, 3)
	assert.Len(t, ay, 3)
}

func synthesizeRecording(fs, duration float64) (ts, ppg, ecg []float64) {
	n := int(duration * fs)
	ts = make([]float64, n)
	ppg = make([]float64, n)
	ecg = make([]float64, n)
	for i := 0; i < n; i++ {
		ti := float64(i) / fs
		ts[i] = ti

		// one pulse per second, delayed half a beat behind the ECG
		ppg[i] = math.Sin(2 * math.Pi * (ti - 0.25))

		// a 10 Hz wavelet centered on every integer second stands in
		// for the QRS complex
		beatPhase := ti - math.Floor(ti+0.5)
		env := math.Exp(-0.5 * (beatPhase / 0.03) * (beatPhase / 0.03))
		ecg[i] = env * math.Cos(2*math.Pi*10*beatPhase)
	}
	return ts, ppg, ecg
}

func TestAnalyzeROIRequiresROI(t *testing.T) {
	a, err := NewAnalyzer(128)
	require.NoError(t, err)

	ts, ppg, ecg := synthesizeRecording(128, 10)
	_, err = a.AnalyzeROI(ts, ppg, ecg, model.DefaultAnalyzeOptions())
	require.Error(t, err)
	assert.Equal(t, ErrNoROIConfigured, errors.Cause(err))
}

func TestAnalyzeROIEndToEnd(t *testing.T) {
	const fs = 128.0
	a, err := NewAnalyzer(fs)
	require.NoError(t, err)
	require.NoError(t, a.SetROI(5.0, 25.0))

	ts, ppg, ecg := synthesizeRecording(fs, 30)
	res, err := a.AnalyzeROI(ts, ppg, ecg, model.DefaultAnalyzeOptions())
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.StartSeconds)
	assert.Equal(t, 25.0, res.EndSeconds)
	assert.Equal(t, int(20*fs), res.NumSamples)
	assert.Equal(t, fs, res.SamplingRate)

	require.True(t, res.HasHeartRate())
	assert.InDelta(t, 60.0, *res.HeartRateBPM, 5.0)
	assert.InDelta(t, 1.0, *res.RRMeanSeconds, 0.1)

	require.True(t, res.HasPTT())
	assert.InDelta(t, 0.5, *res.PTTMeanSeconds, 0.15)

	require.Contains(t, res.SQI, model.SQISaturation)
	require.Contains(t, res.SQI, model.SQIFlatness)
	require.Contains(t, res.SQI, model.SQISNRLike)
	assert.Less(t, res.SQI[model.SQIFlatness], 0.5)
}

func TestAnalyzeROIDegradesOnFlatSignals(t *testing.T) {
	const fs = 128.0
	a, err := NewAnalyzer(fs)
	require.NoError(t, err)
	require.NoError(t, a.SetROI(0.0, 10.0))

	n := int(10 * fs)
	ts := make([]float64, n)
	flat := make([]float64, n)
	for i := range ts {
		ts[i] = float64(i) / fs
		flat[i] = 1.0
	}

	res, err := a.AnalyzeROI(ts, flat, flat, model.DefaultAnalyzeOptions())
	require.NoError(t, err)

	assert.False(t, res.HasHeartRate())
	assert.Nil(t, res.RRMeanSeconds)
	assert.Nil(t, res.RRSDSeconds)
	assert.False(t, res.HasPTT())
	assert.False(t, math.IsNaN(res.DelayXCorrSeconds))

	// a dead-flat segment pegs both the flatness and saturation indices
	require.NotNil(t, res.SQI)
	assert.InDelta(t, 1.0, res.SQI[model.SQIFlatness], 1e-9)
	assert.InDelta(t, 1.0, res.SQI[model.SQISaturation], 1e-9)
	assert.InDelta(t, 0.0, res.SQI[model.SQISNRLike], 1e-9)
}

func TestAnalyzeROIFilterModes(t *testing.T) {
	const fs = 128.0
	ts, ppg, ecg := synthesizeRecording(fs, 30)

	for _, mode := range []string{
		model.FilterModeDefault,
		model.FilterModePPGECG,
		model.FilterModePPGOnly,
		model.FilterModeOff,
		"unrecognized",
	} {
		t.Run(mode, func(t *testing.T) {
			a, err := NewAnalyzer(fs)
			require.NoError(t, err)
			require.NoError(t, a.SetROI(5.0, 25.0))

			res, err := a.AnalyzeROI(ts, ppg, ecg, model.AnalyzeOptions{Detrend: true, FilterMode: mode})
			require.NoError(t, err)
			require.NotNil(t, res.SQI)
		})
	}
}

func TestAnalyzeROIRejectsUnsupportedRate(t *testing.T) {
	// the 5-15 Hz ECG band needs a Nyquist above 15 Hz
	const fs = 20.0
	a, err := NewAnalyzer(fs)
	require.NoError(t, err)
	require.NoError(t, a.SetROI(0.0, 10.0))

	ts, ppg, ecg := synthesizeRecording(fs, 10)
	_, err = a.AnalyzeROI(ts, ppg, ecg, model.DefaultAnalyzeOptions())
	assert.Error(t, err)

	// without filtering the same rate is fine
	res, err := a.AnalyzeROI(ts, ppg, ecg, model.AnalyzeOptions{FilterMode: model.FilterModeOff})
	require.NoError(t, err)
	assert.NotNil(t, res)
}
