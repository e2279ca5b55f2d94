package onsightstub

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	dErrors "onsightnow/pkg/domain-errors"
	"onsightnow/pkg/secrets"
	"onsightnow/pkg/validation"
)

// Config is read from ONSIGHT_STUB_* variables.
type Config struct {
	Addr         string        `envconfig:"ADDR" default:":8081" validate:"required"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	ClientID     string        `envconfig:"CLIENT_ID" default:"onsight-dev" validate:"required"`
	ClientSecret string        `envconfig:"CLIENT_SECRET" validate:"required"`
	SigningKey   string        `envconfig:"SIGNING_KEY"`
	Issuer       string        `envconfig:"ISSUER" default:"https://login.onsightnow.local" validate:"required,url"`
	TokenTTL     time.Duration `envconfig:"TOKEN_TTL" default:"1h" validate:"min=1s"`
	JoinBaseURL  string        `envconfig:"JOIN_BASE_URL" default:"https://meet.onsightnow.local/join" validate:"required,url"`
	TenantID     string        `envconfig:"TENANT_ID" validate:"omitempty,uuid"`
}

// ConfigFromEnv loads the stub configuration and generates a signing key
// when none is set.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("ONSIGHT_STUB", &cfg); err != nil {
		return Config{}, dErrors.Wrap(err, dErrors.CodeConfiguration, err.Error())
	}
	if err := validation.ValidateAs(cfg, dErrors.CodeConfiguration); err != nil {
		return Config{}, err
	}
	if cfg.SigningKey == "" {
		key, err := secrets.Generate()
		if err != nil {
			return Config{}, err
		}
		cfg.SigningKey = key
	}
	return cfg, nil
}
