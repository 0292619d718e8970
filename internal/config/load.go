package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every nested configuration key when read from
// the environment, e.g. SLACKBOT_SERVER_PORT.
const EnvPrefix = "SLACKBOT"

// FileKey is the viper key holding an explicit config file path.
const FileKey = "config_file"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom is Load on a caller-provided viper instance, which lets the CLI
// bind its flags before the configuration is resolved.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The chat credentials are also accepted under their conventional names.
	if err := v.BindEnv("slack.verification_token",
		EnvPrefix+"_SLACK_VERIFICATION_TOKEN", "VERIFICATION_TOKEN", "SLACK_VERIFICATION_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind verification token env: %w", err)
	}
	if err := v.BindEnv("slack.bot_token",
		EnvPrefix+"_SLACK_BOT_TOKEN", "BOT_TOKEN", "SLACK_BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind bot token env: %w", err)
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("server.timezone", "Local")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("slack.verification_token", "")
	v.SetDefault("slack.bot_token", "")
	v.SetDefault("slack.api_url", "https://slack.com/api/")
	v.SetDefault("slack.timeout_seconds", 0)

	v.SetDefault("events.queue_size", 100)
}

// readConfigFile reads an explicit file when one is set, otherwise an
// optional config.yaml from the working directory.
func readConfigFile(v *viper.Viper) error {
	if path := v.GetString(FileKey); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := cfg.Server.Location(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
