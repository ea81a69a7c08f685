package httpclient

import (
	"time"

	"github.com/kyildiz/restkit/validation"
	"github.com/kyildiz/restkit/version"
)

const (
	// DefaultTimeout is the per-attempt request timeout.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxAttempts is the total number of attempts per request.
	DefaultMaxAttempts = 10
	// DefaultRetryDelay is the fixed sleep between attempts.
	DefaultRetryDelay = 30 * time.Second
)

// Config holds the client configuration. It is owned by one client and
// read-only once requests start; a request may override the timeout only.
type Config struct {
	// BaseURL is the root URL prepended to every request path.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Timeout is the per-attempt timeout. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Auth is the authentication scheme applied to all requests.
	Auth Authentication `yaml:"-" mapstructure:"-"`

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`

	// MaxAttempts is the total number of attempts per request, at least 1.
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts" validate:"min=1"`

	// RetryDelay is the fixed sleep between attempts.
	RetryDelay time.Duration `yaml:"retry_delay" mapstructure:"retry_delay" validate:"gte=0"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.Headers == nil {
		c.Headers = map[string]string{}
	}
	if _, ok := c.Headers["User-Agent"]; !ok {
		c.Headers["User-Agent"] = version.UserAgent()
	}
}

// Validate checks the configuration via struct tags.
func (c *Config) Validate() error {
	return validation.Struct(c)
}
