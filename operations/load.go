package operations

import (
	"strings"

	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/loader"
)

// loadRecording resolves the input flags into a Recording, either by
// synthesizing one or by loading a csv/edf file chosen by extension.
func loadRecording(c *cli.Context) (*loader.Recording, error) {
	if c.Bool(syntheticFlagName) {
		return loader.NewSyntheticRecording(loader.SyntheticOptions{
			DurationSeconds: c.Float64(durationFlagName),
			SamplingRate:    c.Float64(rateFlagName),
			Seed:            c.Int64(seedFlagName),
			NoiseLevel:      c.Float64(noiseFlagName),
		})
	}

	path := c.String(pathFlagName)
	if path == "" {
		return nil, errors.New("must specify an input file or --synthetic")
	}
	if !utility.FileExists(path) {
		return nil, errors.Errorf("file '%s' does not exist", path)
	}

	switch {
	case strings.HasSuffix(strings.ToLower(path), ".edf"):
		return loader.LoadEDF(path, loader.EDFOptions{
			PPGLabel: c.String(ppgLabelFlagName),
			ECGLabel: c.String(ecgLabelFlagName),
		})
	default:
		return loader.LoadCSV(path, loader.CSVOptions{
			TimeColumn:   c.String(timeColumnFlagName),
			PPGColumn:    c.String(ppgColumnFlagName),
			ECGColumn:    c.String(ecgColumnFlagName),
			SamplingRate: c.Float64(rateFlagName),
		})
	}
}
