package userservice

// Config is the user service configuration, loaded from the env-keyed YAML
// tree under cmd/config/userservice.
type Config struct {
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
}
