// Package config loads the server configuration from ONSIGHT_* environment
// variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	dErrors "onsightnow/pkg/domain-errors"
	"onsightnow/pkg/validation"
)

// Prefix is prepended to every variable name, e.g. ONSIGHT_ADDR.
const Prefix = "ONSIGHT"

const (
	StoreMemory    = "memory"
	StoreDataverse = "dataverse"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string        `envconfig:"ADDR" default:":8080" validate:"required"`
	Environment    string        `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s" validate:"min=1s"`
	MaxBodyBytes   int64         `envconfig:"MAX_BODY_BYTES" default:"1048576" validate:"min=1"`
	ShutdownGrace  time.Duration `envconfig:"SHUTDOWN_GRACE" default:"10s"`
	// TrustedProxies is a comma separated list of CIDR prefixes whose
	// forwarding headers are honoured.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	RecordStore string `envconfig:"RECORD_STORE" default:"memory" validate:"oneof=memory dataverse"`
	FixturePath string `envconfig:"FIXTURE_PATH"`

	Dataverse Dataverse `envconfig:"DATAVERSE" validate:"-"`
}

// Dataverse holds the organisation URL and the app registration used to
// obtain a Web API token.
type Dataverse struct {
	BaseURL      string `envconfig:"BASE_URL" validate:"required,url"`
	TokenURL     string `envconfig:"TOKEN_URL" validate:"required,url"`
	ClientID     string `envconfig:"CLIENT_ID" validate:"required"`
	ClientSecret string `envconfig:"CLIENT_SECRET" validate:"required"`
	// Scope defaults to "{BaseURL}/.default" when empty.
	Scope string `envconfig:"SCOPE"`
}

// FromEnv builds the Server config from the process environment.
func FromEnv() (Server, error) {
	var cfg Server
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Server{}, dErrors.Wrap(err, dErrors.CodeConfiguration, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks field constraints. Dataverse settings are only required
// when the Dataverse record store is selected.
func (c Server) Validate() error {
	if err := validation.ValidateAs(c, dErrors.CodeConfiguration); err != nil {
		return err
	}
	if c.RecordStore == StoreDataverse {
		return validation.ValidateAs(c.Dataverse, dErrors.CodeConfiguration)
	}
	return nil
}

// DataverseScope returns the configured scope or the resource default.
func (c Server) DataverseScope() string {
	if c.Dataverse.Scope != "" {
		return c.Dataverse.Scope
	}
	return c.Dataverse.BaseURL + "/.default"
}
