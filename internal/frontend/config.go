package frontend

import (
	"github.com/shopmesh/shopmesh/internal/frontend/clients"
)

// Config is the frontend service configuration, loaded from the env-keyed
// YAML tree under cmd/config/frontend.
type Config struct {
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`

	Services clients.Config `mapstructure:"services"`

	HTTP struct {
		// TimeoutSeconds bounds each outbound call. Single attempt, no
		// retries: callers assume at-most-one-attempt latency.
		TimeoutSeconds int `mapstructure:"timeoutSeconds"`
	} `mapstructure:"http"`

	Redis struct {
		Enabled           bool   `mapstructure:"enabled"`
		Addr              string `mapstructure:"addr"`
		SessionTTLMinutes int    `mapstructure:"sessionTtlMinutes"`
	} `mapstructure:"redis"`
}
