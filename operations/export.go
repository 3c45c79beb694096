package operations

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/loader"
)

// Export returns the export sub-command object, which writes the ROI
// segment of a recording to a csv file.
func Export() cli.Command {
	return cli.Command{
		Name:  "export",
		Usage: "write the region of interest of a recording as csv",
		Flags: mergeFlags(
			addPathFlag(),
			addOutputPath(),
			roiFlags(),
			rateFlag(),
			syntheticFlags(),
			channelFlags()),
		Action: func(c *cli.Context) error {
			rec, err := loadRecording(c)
			if err != nil {
				return errors.Wrap(err, "problem loading recording")
			}

			start := c.Float64(roiStartFlagName)
			end := c.Float64(roiEndFlagName)
			if !c.IsSet(roiEndFlagName) {
				end = rec.Duration()
			}

			out := c.String(outputFlagName)
			if out == "" {
				return errors.WithStack(loader.ExportROICSV(os.Stdout, rec, start, end))
			}

			if err := loader.ExportROICSVFile(out, rec, start, end); err != nil {
				return errors.Wrap(err, "problem exporting segment")
			}
			grip.Infof("wrote segment [%g, %g) to %s", start, end, out)
			return nil
		},
	}
}
