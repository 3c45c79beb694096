package operations

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/loader"
)

// Generate returns the generate sub-command object, which synthesizes a
// test recording and writes it as csv.
func Generate() cli.Command {
	return cli.Command{
		Name:  "generate",
		Usage: "synthesize a ppg/ecg recording for testing",
		Flags: mergeFlags(addOutputPath(), rateFlag(), syntheticFlags()),
		Action: func(c *cli.Context) error {
			rec, err := loader.NewSyntheticRecording(loader.SyntheticOptions{
				DurationSeconds: c.Float64(durationFlagName),
				SamplingRate:    c.Float64(rateFlagName),
				Seed:            c.Int64(seedFlagName),
				NoiseLevel:      c.Float64(noiseFlagName),
			})
			if err != nil {
				return errors.Wrap(err, "problem generating recording")
			}

			out := c.String(outputFlagName)
			if out == "" {
				return errors.WithStack(loader.WriteCSV(os.Stdout, rec))
			}

			f, err := os.Create(out)
			if err != nil {
				return errors.WithStack(err)
			}
			defer f.Close()

			if err := loader.WriteCSV(f, rec); err != nil {
				return errors.Wrap(err, "problem writing recording")
			}
			grip.Infof("wrote %0.0f second recording at %0.0f hz to %s", rec.Duration(), rec.FS, out)
			return nil
		},
	}
}
