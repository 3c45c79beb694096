package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVAutoDetect(t *testing.T) {
	in := strings.Join([]string{
		"Time,PPG,ECG",
		"0.00,0.1,1.0",
		"0.01,0.2,0.9",
		"0.02,0.3,0.8",
		"0.03,0.4,0.7",
	}, "\n")

	rec, err := ReadCSV(strings.NewReader(in), CSVOptions{})
	require.NoError(t, err)

	assert.Len(t, rec.T, 4)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, rec.PPG)
	assert.Equal(t, []float64{1.0, 0.9, 0.8, 0.7}, rec.ECG)
	assert.InDelta(t, 100.0, rec.FS, 1e-6)
}

func TestReadCSVExplicitColumns(t *testing.T) {
	in := strings.Join([]string{
		"chan_a,chan_b",
		"0.5,1.5",
		"0.6,1.4",
	}, "\n")

	rec, err := ReadCSV(strings.NewReader(in), CSVOptions{
		PPGColumn:    "chan_a",
		ECGColumn:    "chan_b",
		SamplingRate: 128,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.6}, rec.PPG)
	assert.Equal(t, 128.0, rec.FS)
	// implied time axis
	assert.Equal(t, 0.0, rec.T[0])
	assert.InDelta(t, 1.0/128.0, rec.T[1], 1e-12)
}

func TestReadCSVExplicitRateWins(t *testing.T) {
	in := strings.Join([]string{
		"time,ppg,ecg",
		"0.0,0,0",
		"0.5,0,0",
		"1.0,0,0",
		"1.5,0,0",
	}, "\n")

	rec, err := ReadCSV(strings.NewReader(in), CSVOptions{SamplingRate: 64})
	require.NoError(t, err)
	assert.Equal(t, 64.0, rec.FS)
}

func TestReadCSVFailures(t *testing.T) {
	for _, test := range []struct {
		name string
		in   string
		opts CSVOptions
	}{
		{
			name: "MissingSignalColumns",
			in:   "time,foo\n0,1\n",
		},
		{
			name: "NoDataRows",
			in:   "time,ppg,ecg\n",
			opts: CSVOptions{SamplingRate: 100},
		},
		{
			name: "UnparsableCell",
			in:   "ppg,ecg\n1.0,oops\n",
			opts: CSVOptions{SamplingRate: 100},
		},
		{
			name: "NoRateAndNoTimeColumn",
			in:   "ppg,ecg\n1,2\n3,4\n5,6\n",
		},
		{
			name: "ExplicitColumnAbsent",
			in:   "ppg,ecg\n1,2\n",
			opts: CSVOptions{PPGColumn: "pulse", SamplingRate: 100},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(test.in), test.opts)
			assert.Error(t, err)
		})
	}
}

func TestInferSamplingRateTolerantOfJitter(t *testing.T) {
	// one dropped sample does not move the median spacing
	ts := []float64{0.00, 0.01, 0.02, 0.04, 0.05, 0.06, 0.07}
	assert.InDelta(t, 100.0, inferSamplingRate(ts), 1e-6)
}
