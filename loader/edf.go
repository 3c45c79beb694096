package loader

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/OpenPSG/edf"
	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/dsp"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// Channel label substrings tried, case-insensitively, when the caller
// does not name the channels explicitly.
var (
	ppgLabelCandidates = []string{"ppg", "pleth"}
	ecgLabelCandidates = []string{"ecg", "ekg"}
)

// EDFOptions directs EDF ingestion. Empty labels enable auto-detection
// by label substring.
type EDFOptions struct {
	PPGLabel string
	ECGLabel string
}

// edfLayout carries the header fields the loader needs that the edf
// package keeps to itself: per-channel labels and sample counts, and
// the record geometry the rates derive from.
type edfLayout struct {
	dataRecords           int
	recordDurationSeconds float64
	labels                []string
	samplesPerRecord      []int
}

func (l *edfLayout) rate(idx int) float64 {
	return float64(l.samplesPerRecord[idx]) / l.recordDurationSeconds
}

// LoadEDF reads a recording from an EDF/EDF+ file. Each channel's rate
// comes from its samples-per-record and the record duration; when the
// two channels disagree, the PPG channel is resampled onto the ECG
// rate so the pair shares one time axis.
func LoadEDF(path string, opts EDFOptions) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "problem opening edf file '%s'", path)
	}
	defer f.Close()

	layout, err := probeEDFHeader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "problem probing edf header of '%s'", path)
	}

	ppgIdx := findChannel(layout.labels, opts.PPGLabel, ppgLabelCandidates)
	ecgIdx := findChannel(layout.labels, opts.ECGLabel, ecgLabelCandidates)
	if ppgIdx < 0 || ecgIdx < 0 {
		return nil, errors.Errorf("could not locate ppg/ecg channels among %v", layout.labels)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.WithStack(err)
	}
	r, err := edf.Open(f)
	if err != nil {
		return nil, errors.Wrapf(err, "problem parsing edf file '%s'", path)
	}

	ppg, err := readChannel(r, layout, ppgIdx)
	if err != nil {
		return nil, errors.Wrap(err, "problem reading ppg channel")
	}
	ecg, err := readChannel(r, layout, ecgIdx)
	if err != nil {
		return nil, errors.Wrap(err, "problem reading ecg channel")
	}

	ppgFS, ecgFS := layout.rate(ppgIdx), layout.rate(ecgIdx)
	if ppgFS != ecgFS {
		grip.Info(message.Fields{
			"op":     "load_edf",
			"file":   path,
			"ppg_fs": ppgFS,
			"ecg_fs": ecgFS,
			"note":   "resampling ppg onto the ecg rate",
		})
		ppg, err = dsp.Resample(ppg, ppgFS, ecgFS)
		if err != nil {
			return nil, errors.Wrap(err, "problem matching channel rates")
		}
	}

	n := len(ppg)
	if len(ecg) < n {
		n = len(ecg)
	}

	rec := &Recording{
		T:   timeAxis(n, ecgFS),
		PPG: ppg[:n],
		ECG: ecg[:n],
		FS:  ecgFS,
	}
	if err := rec.Validate(); err != nil {
		return nil, errors.Wrap(err, "loaded recording is inconsistent")
	}
	return rec, nil
}

func findChannel(labels []string, explicit string, candidates []string) int {
	if explicit != "" {
		for i, label := range labels {
			if strings.EqualFold(strings.TrimSpace(label), explicit) {
				return i
			}
		}
		return -1
	}

	for _, c := range candidates {
		for i, label := range labels {
			if strings.Contains(strings.ToLower(label), c) {
				return i
			}
		}
	}
	return -1
}

func readChannel(r *edf.Reader, layout *edfLayout, idx int) ([]float64, error) {
	sr, err := r.Signal(idx)
	if err != nil {
		return nil, errors.Wrapf(err, "problem opening channel %d", idx)
	}

	data := make([]float64, layout.dataRecords*layout.samplesPerRecord[idx])
	if _, err := sr.Read(data); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "problem reading channel %d", idx)
	}

	return data, nil
}

// probeEDFHeader parses the fixed-width ASCII header fields the loader
// needs for channel selection and rate derivation. Layout per the
// EDF/EDF+ specification: a 256 byte main header followed by
// field-major per-signal blocks.
func probeEDFHeader(r io.Reader) (*edfLayout, error) {
	main := make([]byte, 256)
	if _, err := io.ReadFull(r, main); err != nil {
		return nil, errors.Wrap(err, "problem reading main header")
	}

	layout := &edfLayout{}
	var err error

	layout.dataRecords, err = strconv.Atoi(strings.TrimSpace(string(main[236:244])))
	if err != nil {
		return nil, errors.Wrap(err, "problem parsing data record count")
	}
	if layout.dataRecords < 0 {
		return nil, errors.New("header does not declare its record count")
	}

	layout.recordDurationSeconds, err = strconv.ParseFloat(strings.TrimSpace(string(main[244:252])), 64)
	if err != nil {
		return nil, errors.Wrap(err, "problem parsing record duration")
	}
	if layout.recordDurationSeconds <= 0 {
		return nil, errors.New("header has a degenerate record duration")
	}

	signalCount, err := strconv.Atoi(strings.TrimSpace(string(main[252:256])))
	if err != nil {
		return nil, errors.Wrap(err, "problem parsing signal count")
	}
	if signalCount < 1 {
		return nil, errors.New("header declares no signals")
	}

	// labels: ns * 16 bytes
	buf := make([]byte, signalCount*16)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "problem reading signal labels")
	}
	layout.labels = make([]string, signalCount)
	for i := 0; i < signalCount; i++ {
		layout.labels[i] = strings.TrimSpace(string(buf[i*16 : (i+1)*16]))
	}

	// skip transducer (80), dimension (8), physical min/max (8+8),
	// digital min/max (8+8), prefiltering (80) per signal
	skip := make([]byte, signalCount*(80+8+8+8+8+8+80))
	if _, err := io.ReadFull(r, skip); err != nil {
		return nil, errors.Wrap(err, "problem reading signal calibration fields")
	}

	// samples per record: ns * 8 bytes
	buf = make([]byte, signalCount*8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "problem reading samples-per-record fields")
	}
	layout.samplesPerRecord = make([]int, signalCount)
	for i := 0; i < signalCount; i++ {
		layout.samplesPerRecord[i], err = strconv.Atoi(strings.TrimSpace(string(buf[i*8 : (i+1)*8])))
		if err != nil {
			return nil, errors.Wrapf(err, "problem parsing samples-per-record for signal %d", i)
		}
		if layout.samplesPerRecord[i] < 1 {
			return nil, errors.Errorf("signal %d declares no samples per record", i)
		}
	}

	return layout, nil
}
