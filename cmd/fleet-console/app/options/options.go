package options

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/AktanAlmazovich/Fleet-manager/internal/console"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/log"
	"github.com/AktanAlmazovich/Fleet-manager/pkg/options"
)

// ConsoleOptions aggregates every option group of the fleet console.
type ConsoleOptions struct {
	RemoteOptions *options.RemoteOptions `json:"remote" mapstructure:"remote"`
	HttpOptions   *options.HttpOptions   `json:"http" mapstructure:"http"`
	MqttOptions   *options.MqttOptions   `json:"mqtt" mapstructure:"mqtt"`
	Log           *log.Options           `json:"log" mapstructure:"log"`
}

// NewConsoleOptions creates the option groups with their defaults.
func NewConsoleOptions() *ConsoleOptions {
	return &ConsoleOptions{
		RemoteOptions: options.NewRemoteOptions(),
		HttpOptions:   options.NewHttpOptions(),
		MqttOptions:   options.NewMqttOptions(),
		Log:           log.NewOptions(),
	}
}

// AddFlags binds every option group to the given flag set.
func (o *ConsoleOptions) AddFlags(fs *pflag.FlagSet) {
	o.RemoteOptions.AddFlags(fs)
	o.HttpOptions.AddFlags(fs)
	o.MqttOptions.AddFlags(fs)
	o.Log.AddFlags(fs)
}

// Validate aggregates the validation results of all option groups.
func (o *ConsoleOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.RemoteOptions.Validate()...)
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.MqttOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errors.Join(errs...)
}

// Config builds the runtime configuration from the resolved options.
func (o *ConsoleOptions) Config() (*console.Config, error) {
	return &console.Config{
		RemoteOptions: o.RemoteOptions,
		HttpOptions:   o.HttpOptions,
		MqttOptions:   o.MqttOptions,
	}, nil
}
