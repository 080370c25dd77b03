package config

import (
	"strings"

	"github.com/spf13/viper"
)

const ENV_PREFIX = "FUNNELCAST"

// Flag names shared between cobra and viper. Kebab-case here, snake_case in
// viper and in FUNNELCAST_* environment variables.
const (
	Debug = "debug"

	DatabasePath = "database.path"

	DataDir = "data.dir"

	ExportOutputDir = "export.output-dir"

	SessionInactivityMinutes = "sessions.inactivity-minutes"

	DataDogStatsdEnabled    = "datadog.statsd.enabled"
	DataDogStatsdUrl        = "datadog.statsd.url"
	DataDogStatsdSampleRate = "datadog.statsd.sample-rate"
)

func KebabToSnakeCase(str string) string {
	return strings.ReplaceAll(strings.ReplaceAll(str, "-", "_"), ".", "_")
}

type DatabaseConfig struct {
	Path string
}

type DataConfig struct {
	// Directory containing users.csv, events.csv and orders.csv.
	Dir string
}

type ExportConfig struct {
	OutputDir string
}

type SessionConfig struct {
	// Inactivity gap, in minutes, that splits a user's events into
	// separate sessions. A gap of exactly this many minutes continues
	// the session; only a strictly greater gap starts a new one.
	InactivityMinutes int
}

type StatsdConfig struct {
	Enabled    bool
	Url        string
	SampleRate float64
}

type Config struct {
	Debug          bool
	DatabaseConfig DatabaseConfig
	DataConfig     DataConfig
	ExportConfig   ExportConfig
	SessionConfig  SessionConfig
	StatsdConfig   StatsdConfig
}

func NewConfig() *Config {
	return &Config{
		Debug: viper.GetBool(KebabToSnakeCase(Debug)),

		DatabaseConfig: DatabaseConfig{
			Path: viper.GetString(KebabToSnakeCase(DatabasePath)),
		},

		DataConfig: DataConfig{
			Dir: viper.GetString(KebabToSnakeCase(DataDir)),
		},

		ExportConfig: ExportConfig{
			OutputDir: viper.GetString(KebabToSnakeCase(ExportOutputDir)),
		},

		SessionConfig: SessionConfig{
			InactivityMinutes: viper.GetInt(KebabToSnakeCase(SessionInactivityMinutes)),
		},

		StatsdConfig: StatsdConfig{
			Enabled:    viper.GetBool(KebabToSnakeCase(DataDogStatsdEnabled)),
			Url:        viper.GetString(KebabToSnakeCase(DataDogStatsdUrl)),
			SampleRate: viper.GetFloat64(KebabToSnakeCase(DataDogStatsdSampleRate)),
		},
	}
}

// NewDefaultConfig is used by tests that bypass cobra flag binding.
func NewDefaultConfig() *Config {
	return &Config{
		Debug: true,
		DatabaseConfig: DatabaseConfig{
			Path: "analytics.db",
		},
		DataConfig: DataConfig{
			Dir: "data/raw",
		},
		ExportConfig: ExportConfig{
			OutputDir: "data/exports",
		},
		SessionConfig: SessionConfig{
			InactivityMinutes: 30,
		},
		StatsdConfig: StatsdConfig{
			Enabled:    false,
			SampleRate: 1.0,
		},
	}
}
