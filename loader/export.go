package loader

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// WriteCSV writes the whole recording as a headed time,ppg,ecg CSV.
func WriteCSV(w io.Writer, rec *Recording) error {
	if err := rec.Validate(); err != nil {
		return errors.Wrap(err, "refusing to export an inconsistent recording")
	}
	return errors.WithStack(writeSegment(w, rec, 0, len(rec.T)))
}

// ExportROICSV writes the [start, end) second window of the recording
// as a headed CSV. Out-of-range bounds clamp to the recording the same
// way ROI extraction does; windows shorter than two samples are
// rejected.
func ExportROICSV(w io.Writer, rec *Recording, startSeconds, endSeconds float64) error {
	if err := rec.Validate(); err != nil {
		return errors.Wrap(err, "refusing to export an inconsistent recording")
	}
	if endSeconds <= startSeconds {
		return errors.Errorf("export window [%f, %f) is empty", startSeconds, endSeconds)
	}

	startIdx := int(startSeconds * rec.FS)
	endIdx := int(endSeconds * rec.FS)
	if startIdx < 0 {
		startIdx = 0
	}
	if endIdx > len(rec.T) {
		endIdx = len(rec.T)
	}

	if endIdx-startIdx < 2 {
		return errors.Errorf("export window [%f, %f) covers fewer than two samples",
			startSeconds, endSeconds)
	}

	return errors.WithStack(writeSegment(w, rec, startIdx, endIdx))
}

// ExportROICSVFile is ExportROICSV writing to a new file at path.
func ExportROICSVFile(path string, rec *Recording, startSeconds, endSeconds float64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "problem creating export file '%s'", path)
	}
	defer f.Close()

	if err := ExportROICSV(f, rec, startSeconds, endSeconds); err != nil {
		return err
	}
	return errors.Wrapf(f.Sync(), "problem flushing export file '%s'", path)
}

func writeSegment(w io.Writer, rec *Recording, startIdx, endIdx int) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "ppg", "ecg"}); err != nil {
		return errors.Wrap(err, "problem writing csv header")
	}

	row := make([]string, 3)
	for i := startIdx; i < endIdx; i++ {
		row[0] = strconv.FormatFloat(rec.T[i], 'g', -1, 64)
		row[1] = strconv.FormatFloat(rec.PPG[i], 'g', -1, 64)
		row[2] = strconv.FormatFloat(rec.ECG[i], 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "problem writing csv row %d", i)
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "problem flushing csv output")
}
