package orderservice

// Config is the order service configuration, loaded from the env-keyed YAML
// tree under cmd/config/orderservice.
type Config struct {
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`

	Services struct {
		ProductBaseURL string `mapstructure:"productBaseUrl"`
	} `mapstructure:"services"`

	HTTP struct {
		TimeoutSeconds int `mapstructure:"timeoutSeconds"`
	} `mapstructure:"http"`

	Redis struct {
		Enabled         bool   `mapstructure:"enabled"`
		Addr            string `mapstructure:"addr"`
		OrderTTLMinutes int    `mapstructure:"orderTtlMinutes"`
	} `mapstructure:"redis"`
}
