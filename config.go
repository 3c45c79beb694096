package biosync

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Configuration defines service level settings shared by the CLI and
// the REST service. Zero values are replaced with defaults during
// validation.
type Configuration struct {
	Port         int     `yaml:"port" json:"port"`
	SamplingRate float64 `yaml:"sampling_rate" json:"sampling_rate"`

	// Synthetic recording defaults used by the generate command and
	// by tools that need a stand-in recording.
	SyntheticDurationSeconds float64 `yaml:"synthetic_duration_s" json:"synthetic_duration_s"`
	SyntheticSeed            int64   `yaml:"synthetic_seed" json:"synthetic_seed"`
}

func (c *Configuration) Validate() error {
	catcher := grip.NewBasicCatcher()

	if c.Port < 0 {
		catcher.Add(errors.New("port must not be negative"))
	}
	if c.Port == 0 {
		c.Port = DefaultServicePort
	}

	if c.SamplingRate < 0 {
		catcher.Add(errors.New("sampling rate must not be negative"))
	}
	if c.SamplingRate == 0 {
		c.SamplingRate = DefaultSamplingRate
	}

	if c.SyntheticDurationSeconds < 0 {
		catcher.Add(errors.New("synthetic duration must not be negative"))
	}
	if c.SyntheticDurationSeconds == 0 {
		c.SyntheticDurationSeconds = 10
	}

	return catcher.Resolve()
}

// LoadConfiguration reads a yaml configuration from file and validates
// it, returning defaults for unset fields.
func LoadConfiguration(fn string) (*Configuration, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "problem reading configuration file '%s'", fn)
	}

	conf := &Configuration{}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrapf(err, "problem parsing configuration file '%s'", fn)
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return conf, nil
}
