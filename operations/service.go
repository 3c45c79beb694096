package operations

import (
	"context"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	biosync "github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization"
	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/rest"
)

// Service returns the service sub-command object, which is responsible
// for starting the rest api.
func Service() cli.Command {
	return cli.Command{
		Name:  "service",
		Usage: "run the waveform analysis api service",
		Flags: mergeFlags(rateFlag(),
			[]cli.Flag{
				cli.StringFlag{
					Name:  configFlag,
					Usage: "path to a yaml configuration file",
				},
				cli.IntFlag{
					Name:   joinFlagNames(servicePortFlag, "p"),
					Usage:  "specify a port to run the service on",
					Value:  biosync.DefaultServicePort,
					EnvVar: "BIOSYNC_SERVICE_PORT",
				},
			}),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			conf := &biosync.Configuration{
				Port:         c.Int(servicePortFlag),
				SamplingRate: c.Float64(rateFlagName),
			}
			if fn := c.String(configFlag); fn != "" {
				loaded, err := biosync.LoadConfiguration(fn)
				if err != nil {
					return errors.Wrap(err, "problem loading configuration")
				}
				if conf.Port == biosync.DefaultServicePort {
					conf.Port = loaded.Port
				}
				if conf.SamplingRate == 0 {
					conf.SamplingRate = loaded.SamplingRate
				}
			}
			if err := conf.Validate(); err != nil {
				return errors.Wrap(err, "problem validating configuration")
			}

			service := &rest.Service{
				Port:         conf.Port,
				SamplingRate: conf.SamplingRate,
			}

			if err := service.Validate(); err != nil {
				return errors.Wrap(err, "problem validating service")
			}

			grip.Noticef("starting biosync service on :%d", service.Port)
			if err := service.Start(ctx); err != nil {
				return errors.Wrap(err, "problem running service")
			}

			grip.Info("completed service, terminating.")
			return nil
		},
	}
}
