package operations

import (
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/analysis"
	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/model"
	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/util"
)

// Analyze returns the analyze sub-command object, which runs the full
// ROI pipeline over a recording and emits the result as JSON.
func Analyze() cli.Command {
	return cli.Command{
		Name:  "analyze",
		Usage: "compute heart rate, ptt, delay, and quality metrics for a region of interest",
		Flags: mergeFlags(
			addPathFlag(),
			addOutputPath(),
			roiFlags(),
			rateFlag(),
			conditioningFlags(),
			syntheticFlags(),
			channelFlags()),
		Action: func(c *cli.Context) error {
			rec, err := loadRecording(c)
			if err != nil {
				return errors.Wrap(err, "problem loading recording")
			}

			analyzer, err := analysis.NewAnalyzer(rec.FS)
			if err != nil {
				return errors.WithStack(err)
			}

			start := c.Float64(roiStartFlagName)
			end := c.Float64(roiEndFlagName)
			if !c.IsSet(roiEndFlagName) {
				end = rec.Duration()
			}
			if err := analyzer.SetROI(start, end); err != nil {
				return errors.Wrap(err, "problem setting region of interest")
			}

			opts := model.DefaultAnalyzeOptions()
			opts.Detrend = !c.Bool(noDetrendFlagName)
			if mode := c.String(filterModeFlagName); mode != "" {
				opts.FilterMode = mode
			}

			result, err := analyzer.AnalyzeROI(rec.T, rec.PPG, rec.ECG, opts)
			if err != nil {
				return errors.Wrap(err, "problem analyzing region of interest")
			}

			if out := c.String(outputFlagName); out != "" {
				grip.Infof("writing analysis results to %s", out)
				return errors.WithStack(util.WriteJSON(out, result))
			}

			return errors.WithStack(util.PrintJSON(result))
		},
	}
}
