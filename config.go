package taskpool

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config is the serializable part of Options, as read from flags or a
// config file.
type Config struct {
	Workers          uint   `mapstructure:"workers"`
	PinWorkers       bool   `mapstructure:"pin-workers"`
	MetricsNamespace string `mapstructure:"metrics-namespace"`
}

// DecodeConfig builds a Config from loosely typed settings. Keys not
// known to Config are ignored.
func DecodeConfig(raw map[string]any) (Config, error) {
	var c Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &c,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("taskpool: decode config: %w", err)
	}
	return c, nil
}

// Options returns pool options for c. Metrics, Context and the error
// handlers are left for the caller.
func (c Config) Options() Options {
	return Options{
		Workers:    c.Workers,
		PinWorkers: c.PinWorkers,
	}
}
