// Package config resolves devrun settings from defaults, the environment and
// command-line flags.
package config

import (
	"time"

	"github.com/Paintersrp/devrun/internal/engine"
)

// EnvPrefix prefixes every environment variable devrun reads its own
// settings from.
const EnvPrefix = "DEVRUN_"

// Config holds the supervisor settings. Keys are the lower-cased environment
// variable names without EnvPrefix.
type Config struct {
	Tasks          []string      `koanf:"tasks"`
	GracePeriod    time.Duration `koanf:"grace_period"`
	PackageManager string        `koanf:"package_manager"`
	Verbose        bool          `koanf:"verbose"`
	NoColor        bool          `koanf:"no_color"`
	MetricsAddr    string        `koanf:"metrics_addr"`
}

// DefaultTasks are the package scripts run when nothing else is configured.
var DefaultTasks = []string{"dev:watch", "dev:serve"}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Tasks:          append([]string(nil), DefaultTasks...),
		GracePeriod:    engine.DefaultGracePeriod,
		PackageManager: engine.DefaultPackageManager,
	}
}
