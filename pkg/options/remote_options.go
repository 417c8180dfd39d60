package options

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*RemoteOptions)(nil)

// RemoteOptions contains configuration for reaching the remote fleet service.
type RemoteOptions struct {
	// BaseURL is the root endpoint of the fleet service, e.g.
	// "http://localhost:3000/api".
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Timeout bounds every call to the fleet service. An expired call is
	// treated as a failed command.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewRemoteOptions creates a RemoteOptions object with default parameters.
func NewRemoteOptions() *RemoteOptions {
	return &RemoteOptions{
		BaseURL: "http://localhost:3000/api",
		Timeout: 10 * time.Second,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *RemoteOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	u, err := url.Parse(o.BaseURL)
	if err != nil {
		errors = append(errors, fmt.Errorf("invalid remote base URL %q: %w", o.BaseURL, err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errors = append(errors, fmt.Errorf("remote base URL %q must use http or https", o.BaseURL))
	}

	if o.Timeout <= 0 {
		errors = append(errors, fmt.Errorf("remote timeout must be positive, got %s", o.Timeout))
	}

	return errors
}

// AddFlags adds flags for the fleet service client to the specified FlagSet.
func (o *RemoteOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.BaseURL, "remote.base-url", o.BaseURL, "Base URL of the remote fleet service.")
	fs.DurationVar(&o.Timeout, "remote.timeout", o.Timeout, "Timeout for calls to the remote fleet service.")
}
