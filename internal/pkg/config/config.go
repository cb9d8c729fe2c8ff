package config

import (
	"io"
	"time"
)

// Config defines the values the harness reads at process start.
//
// Keys are dotted paths (for example "user.service.url"). Implementations
// should return the zero value for missing keys instead of failing, callers
// validate what they require.
type Config interface {
	io.Closer

	// GetString retrieves the configuration value associated with the given key as a string.
	GetString(key string) string

	// GetInt retrieves the configuration value associated with the given key as an int.
	GetInt(key string) int

	// GetBool retrieves the configuration value associated with the given key as a bool.
	GetBool(key string) bool

	// GetFloat64 retrieves the configuration value associated with the given key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the configuration value associated with the given key as seconds.
	GetSecond(key string) time.Duration

	// GetMillisecond retrieves the configuration value associated with the given key as milliseconds.
	GetMillisecond(key string) time.Duration

	// GetArray retrieves the configuration value associated with the given key as a slice of strings.
	// Configuration value is stored with format <element1>,<element2>,...
	GetArray(key string) []string
}

// Defaults are applied before any file or environment value is read.
var Defaults = map[string]any{
	"app.name":                           "usere2e",
	"user.service.url":                   "http://localhost:8080",
	"user.service.ready_attempts":        1,
	"user.service.ready_interval_millis": 500,
	"rest.timeout_seconds":               0,
	"rest.bearer_token":                  "",
	"scenario.unique_user":               false,
	"scenario.user_prefix":               "juanmadrid",
	"instrument.enabled":                 false,
	"instrument.service_name":            "usere2e",
	"instrument.service_version":         "dev",
	"instrument.env":                     "local",
	"instrument.otlp_endpoint":           "localhost:4317",
	"instrument.otlp_secure":             false,
	"instrument.trace_sample_ratio":      1.0,
	"instrument.metric_interval_seconds": 15,
	"instrument.log_level":               "info",
	"instrument.log_mask_fields":         "password,authorization",
}
