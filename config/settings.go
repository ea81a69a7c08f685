package config

import (
	"fmt"

	"github.com/kyildiz/restkit/httpclient"
	"github.com/kyildiz/restkit/logger"
)

// Credentials holds the authentication material for the client. Token wins
// over username/password when both are set. Typically sourced from a .env
// file rather than config.yml.
type Credentials struct {
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Token    string `yaml:"token" mapstructure:"token"`
}

// Auth builds the authentication scheme the credentials describe, or nil
// when no credentials are set.
func (c Credentials) Auth() httpclient.Authentication {
	switch {
	case c.Token != "":
		return httpclient.NewBearerAuth(c.Token)
	case c.Username != "":
		return httpclient.NewBasicAuth(c.Username, c.Password)
	default:
		return nil
	}
}

// Settings is the full application configuration: identity, logging, the
// HTTP client and its credentials.
type Settings struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging logger.Config     `yaml:"logging" mapstructure:"logging"`
	Client  httpclient.Config `yaml:"client" mapstructure:"client"`
	Auth    Credentials       `yaml:"auth" mapstructure:"auth"`
}

// ApplyDefaults fills in zero-value fields.
func (s *Settings) ApplyDefaults() {
	if s.Environment == "" {
		s.Environment = "development"
	}
	if s.Environment == "development" {
		s.Debug = true
	}
	if s.Logging.ServiceName == "" && s.Name != "" {
		s.Logging.ServiceName = s.Name
	}
	s.Logging.ApplyDefaults()
	s.Client.ApplyDefaults()
}

// Validate checks the settings.
func (s *Settings) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if s.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", s.Environment)
	}
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := s.Client.Validate(); err != nil {
		return fmt.Errorf("config.client: %w", err)
	}
	return nil
}

// NewClient builds the configured HTTP client with the credentials and a
// logger derived from the logging settings.
func (s *Settings) NewClient() (*httpclient.Client, error) {
	cfg := s.Client
	cfg.Auth = s.Auth.Auth()

	client, err := httpclient.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return client.WithLogger(logger.New(&s.Logging)), nil
}
