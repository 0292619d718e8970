package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Slack  SlackConfig  `mapstructure:"slack" validate:"required"`
	Events EventsConfig `mapstructure:"events" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
	// Timezone is the IANA zone used to render task timestamps and to read
	// reminder times that carry no offset. "Local" uses the host zone.
	Timezone               string `mapstructure:"timezone" validate:"required"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// Location resolves Timezone.
func (c ServerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ShutdownTimeout returns the grace period for draining requests and events.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// SlackConfig contains the chat provider credentials and endpoint.
type SlackConfig struct {
	// VerificationToken is the shared secret expected on inbound commands.
	// When empty every command is rejected.
	VerificationToken string `mapstructure:"verification_token"`
	// BotToken authorizes outbound messages. Only reminder delivery needs it.
	BotToken       string `mapstructure:"bot_token"`
	APIURL         string `mapstructure:"api_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// Timeout returns the outbound HTTP timeout; zero means none.
func (c SlackConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EventsConfig contains event bus settings.
type EventsConfig struct {
	QueueSize int `mapstructure:"queue_size" validate:"gt=0"`
}
