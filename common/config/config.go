package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/shopmesh/shopmesh/common/env"
	"github.com/shopmesh/shopmesh/common/logger"
)

const (
	fileFormat   = ".yaml"         // File format of the config files
	relativePath = "./cmd/config"  // Default relative path for config files (base path)
	envVarPrefix = "env://"        // Prefix for environment variable indirection
)

// YamlReadConfig holds the configuration paths (relative and absolute).
type YamlReadConfig struct {
	RelativePath string // Path relative to the current directory
	AbsolutePath string // Absolute path if provided
	ServiceDir   string // Optional per-service subdirectory
}

// ReadConfigOption is a function signature used to set configuration options.
type ReadConfigOption func(*YamlReadConfig)

// WithRelativePath sets a relative path for the config file.
func WithRelativePath(path string) ReadConfigOption {
	return func(config *YamlReadConfig) {
		config.RelativePath = path
	}
}

// WithAbsolutePath sets an absolute path for the config file.
func WithAbsolutePath(path string) ReadConfigOption {
	return func(config *YamlReadConfig) {
		config.AbsolutePath = path
	}
}

// WithServiceDir selects the per-service subdirectory of the config path,
// so multiple services can share one config tree.
func WithServiceDir(service string) ReadConfigOption {
	return func(config *YamlReadConfig) {
		config.ServiceDir = service
	}
}

// LoadConfig loads the YAML configuration file based on the environment and provided options.
// The file is resolved as <path>[/<service>]/<environment>.yaml and unmarshalled into conf.
// Values of the form "env://NAME" are replaced with the NAME environment variable.
func LoadConfig(conf interface{}, log *logger.Logger, options ...ReadConfigOption) error {
	config := &YamlReadConfig{RelativePath: relativePath}
	for _, option := range options {
		option(config)
	}

	pathToConfigDir := config.RelativePath
	if config.AbsolutePath != "" {
		pathToConfigDir = config.AbsolutePath
	}
	if config.ServiceDir != "" {
		pathToConfigDir = fmt.Sprintf("%s/%s", pathToConfigDir, config.ServiceDir)
	}

	currentEnv, err := env.GetApplicationEnv()
	if err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}

	filePath := fmt.Sprintf("%s/%s%s", pathToConfigDir, currentEnv, fileFormat)
	log.Info("Reading config file", zap.String("path", filePath))

	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // Automatically map environment variables

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	// Replace any "env://VAR" placeholders with the environment variable value
	for _, key := range v.AllKeys() {
		setEnvVariableFromString(v, key, v.Get(key), log)
	}

	if err := v.Unmarshal(conf); err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return nil
}

func setEnvVariableFromString(v *viper.Viper, key string, value interface{}, log *logger.Logger) {
	str, ok := value.(string)
	if !ok || !strings.HasPrefix(str, envVarPrefix) {
		return
	}
	envVar := str[len(envVarPrefix):]

	envValue, exists := os.LookupEnv(envVar)
	if exists {
		v.Set(key, envValue)
		log.Info("set value from environment variable", zap.String("variableName", envVar))
	} else {
		v.Set(key, "") // Set to empty string if env var is missing
		log.Warn("environment variable not found", zap.String("variableName", envVar))
	}
}
