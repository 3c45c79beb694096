package loader

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
)

// Column name candidates tried, case-insensitively, when the caller
// does not name the columns explicitly.
var (
	timeColumnCandidates = []string{"time", "t", "sec", "seconds", "timestamp"}
	ppgColumnCandidates  = []string{"ppg", "ppg_raw", "ppgsignal", "ppg_signal"}
	ecgColumnCandidates  = []string{"ecg", "ecg_raw", "ecgsignal", "ecg_signal"}
)

// CSVOptions directs CSV ingestion. Empty column names enable
// auto-detection; a zero SamplingRate defers to the time column (or
// fails when there is none).
type CSVOptions struct {
	TimeColumn   string
	PPGColumn    string
	ECGColumn    string
	SamplingRate float64
}

// LoadCSV reads a recording from a headed CSV file. The PPG and ECG
// columns are required; the time column is optional when an explicit
// sampling rate is given. With a time column and no explicit rate, the
// rate is inferred from the median sample spacing.
func LoadCSV(path string, opts CSVOptions) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "problem opening csv file '%s'", path)
	}
	defer f.Close()

	rec, err := ReadCSV(f, opts)
	return rec, errors.Wrapf(err, "problem loading csv file '%s'", path)
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader, opts CSVOptions) (*Recording, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "problem reading csv header")
	}

	timeIdx := findColumn(header, opts.TimeColumn, timeColumnCandidates)
	ppgIdx := findColumn(header, opts.PPGColumn, ppgColumnCandidates)
	ecgIdx := findColumn(header, opts.ECGColumn, ecgColumnCandidates)

	if ppgIdx < 0 || ecgIdx < 0 {
		return nil, errors.Errorf("could not locate ppg/ecg columns in header %v", header)
	}

	var ts, ppg, ecg []float64
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "problem reading csv line %d", line)
		}

		p, err := parseCell(row, ppgIdx)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		e, err := parseCell(row, ecgIdx)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		ppg = append(ppg, p)
		ecg = append(ecg, e)

		if timeIdx >= 0 {
			t, err := parseCell(row, timeIdx)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			ts = append(ts, t)
		}
	}

	if len(ppg) == 0 {
		return nil, errors.New("csv contains no data rows")
	}

	fs := opts.SamplingRate
	if fs <= 0 && len(ts) > 2 {
		fs = inferSamplingRate(ts)
	}
	if fs <= 0 {
		return nil, errors.New("no sampling rate given and none could be inferred from a time column")
	}

	if len(ts) == 0 {
		ts = timeAxis(len(ppg), fs)
	}

	rec := &Recording{T: ts, PPG: ppg, ECG: ecg, FS: fs}
	if err := rec.Validate(); err != nil {
		return nil, errors.Wrap(err, "loaded recording is inconsistent")
	}
	return rec, nil
}

// findColumn resolves a column index: an explicit name wins, otherwise
// the first candidate appearing in the header, matched without case.
func findColumn(header []string, explicit string, candidates []string) int {
	if explicit != "" {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), explicit) {
				return i
			}
		}
		return -1
	}

	lower := make(map[string]int, len(header))
	for i, name := range header {
		lower[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, c := range candidates {
		if i, ok := lower[c]; ok {
			return i
		}
	}
	return -1
}

func parseCell(row []string, idx int) (float64, error) {
	if idx >= len(row) {
		return 0, errors.Errorf("row has no column %d", idx)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "problem parsing '%s' as a sample", row[idx])
	}
	return v, nil
}

// inferSamplingRate estimates the rate as the reciprocal of the median
// spacing of the time axis, which tolerates the occasional dropped or
// duplicated timestamp.
func inferSamplingRate(ts []float64) float64 {
	diffs := make(sort.Float64Slice, 0, len(ts)-1)
	for i := 1; i < len(ts); i++ {
		diffs = append(diffs, ts[i]-ts[i-1])
	}
	diffs.Sort()

	dt := stats.Sample{Xs: diffs, Sorted: true}.Quantile(0.5)
	if dt <= 0 {
		return 0
	}
	return 1.0 / dt
}
