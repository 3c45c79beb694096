package operations

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

////////////////////////////////////////////////////////////////////////
//
// Flag Name Constants

const (
	configFlag     = "config"
	pathFlagName   = "path"
	outputFlagName = "output"

	rateFlagName     = "rate"
	roiStartFlagName = "start"
	roiEndFlagName   = "end"

	filterModeFlagName = "filter"
	noDetrendFlagName  = "no-detrend"

	syntheticFlagName = "synthetic"
	durationFlagName  = "duration"
	seedFlagName      = "seed"
	noiseFlagName     = "noise"

	timeColumnFlagName = "time-column"
	ppgColumnFlagName  = "ppg-column"
	ecgColumnFlagName  = "ecg-column"
	ppgLabelFlagName   = "ppg-label"
	ecgLabelFlagName   = "ecg-label"

	servicePortFlag = "port"
)

////////////////////////////////////////////////////////////////////////
//
// Utility Functions

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func mergeFlags(in ...[]cli.Flag) []cli.Flag {
	out := []cli.Flag{}

	for idx := range in {
		out = append(out, in[idx]...)
	}

	return out
}

func setFlagOrFirstPositional(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		val := c.String(name)
		if val == "" {
			if c.NArg() != 1 {
				return errors.Errorf("must specify exactly one positional argument for '%s'", name)
			}

			val = c.Args().Get(0)
		}

		return c.Set(name, val)
	}
}

////////////////////////////////////////////////////////////////////////
//
// Flag Groups

func addPathFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(pathFlagName, "filename", "file", "f"),
		Usage: "path to a csv or edf recording",
	})
}

func addOutputPath(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(outputFlagName, "o"),
		Usage: "path to the output file, printed to stdout when unset",
	})
}

func roiFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.Float64Flag{
			Name:  roiStartFlagName,
			Usage: "region of interest start, in seconds",
		},
		cli.Float64Flag{
			Name:  roiEndFlagName,
			Usage: "region of interest end, in seconds",
		})
}

func rateFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.Float64Flag{
		Name:  joinFlagNames(rateFlagName, "fs"),
		Usage: "sampling rate in hz, inferred from the input when unset",
	})
}

func conditioningFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  filterModeFlagName,
			Usage: "filter mode: default, ppg_ecg, ppg_only, or off",
		},
		cli.BoolFlag{
			Name:  noDetrendFlagName,
			Usage: "skip linear detrending before filtering",
		})
}

func syntheticFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.BoolFlag{
			Name:  syntheticFlagName,
			Usage: "generate a synthetic recording instead of loading a file",
		},
		cli.Float64Flag{
			Name:  durationFlagName,
			Usage: "duration of the synthetic recording, in seconds",
			Value: 10,
		},
		cli.Int64Flag{
			Name:  seedFlagName,
			Usage: "random seed for synthetic noise",
		},
		cli.Float64Flag{
			Name:  noiseFlagName,
			Usage: "synthetic noise amplitude",
		})
}

func channelFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  timeColumnFlagName,
			Usage: "csv column holding the time axis",
		},
		cli.StringFlag{
			Name:  ppgColumnFlagName,
			Usage: "csv column or edf label for the ppg channel",
		},
		cli.StringFlag{
			Name:  ecgColumnFlagName,
			Usage: "csv column or edf label for the ecg channel",
		},
		cli.StringFlag{
			Name:  ppgLabelFlagName,
			Usage: "edf signal label for the ppg channel",
		},
		cli.StringFlag{
			Name:  ecgLabelFlagName,
			Usage: "edf signal label for the ecg channel",
		})
}
