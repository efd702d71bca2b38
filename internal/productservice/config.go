package productservice

// Config is the product service configuration, loaded from the env-keyed
// YAML tree under cmd/config/productservice.
type Config struct {
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`

	Catalog struct {
		// Path to the YAML catalog file, relative to the working directory.
		Path string `mapstructure:"path"`
	} `mapstructure:"catalog"`
}
