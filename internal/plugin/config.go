package plugin

import (
	"strings"

	env "github.com/Netflix/go-env"

	"onsightnow/internal/onsight"
	dErrors "onsightnow/pkg/domain-errors"
	"onsightnow/pkg/validation"
)

// Environment variable names read from the host.
const (
	EnvClientID         = "new_OnsightNowClientId"
	EnvClientSecret     = "new_OnsightNowClientSecret"
	EnvTokenEndpoint    = "new_OnsightNowTokenEndpoint"
	EnvMeetingsEndpoint = "new_OnsightNowMeetingsEndpoint"
	EnvIdaEndpoint      = "new_OnsightNowIdaEndpoint"
)

// Config is the per-invocation Onsight NOW configuration. Endpoints left
// empty fall back to the service defaults.
type Config struct {
	ClientID         string `env:"new_OnsightNowClientId" validate:"required"`
	ClientSecret     string `env:"new_OnsightNowClientSecret" validate:"required"`
	TokenEndpoint    string `env:"new_OnsightNowTokenEndpoint" validate:"omitempty,url"`
	MeetingsEndpoint string `env:"new_OnsightNowMeetingsEndpoint" validate:"omitempty,url"`
	IdaEndpoint      string `env:"new_OnsightNowIdaEndpoint" validate:"omitempty,url"`
}

// LoadConfig reads Config from the host's environment variables. A missing
// credential is a configuration_error.
func LoadConfig(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.Unmarshal(env.EnvSet(vars), &cfg); err != nil {
		return Config{}, dErrors.Wrap(err, dErrors.CodeConfiguration, "failed to read environment variables")
	}
	if err := validation.ValidateAs(cfg, dErrors.CodeConfiguration); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Client returns the onsight client configuration.
func (c Config) Client() onsight.Config {
	return onsight.Config{
		ClientID:         c.ClientID,
		ClientSecret:     c.ClientSecret,
		TokenEndpoint:    c.TokenEndpoint,
		MeetingsEndpoint: c.MeetingsEndpoint,
		IdaEndpoint:      c.IdaEndpoint,
	}
}

// EnvPrefix is shared by every variable the plugins read.
const EnvPrefix = "new_OnsightNow"

// EnvironmentFrom builds a host environment from KEY=VALUE pairs such as
// os.Environ, keeping only the plugin variables.
func EnvironmentFrom(environ []string) map[string]string {
	set, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return map[string]string{}
	}
	out := make(map[string]string)
	for k, v := range set {
		if strings.HasPrefix(k, EnvPrefix) {
			out[k] = v
		}
	}
	return out
}
