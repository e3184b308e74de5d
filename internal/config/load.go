package config

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// LoadOptions controls config loading behavior.
type LoadOptions struct {
	// SkipEnv disables environment variable loading.
	SkipEnv bool
}

// LoadResult contains the loaded config and the sources that contributed.
type LoadResult struct {
	Config  *Config
	Sources []string
}

// Load merges defaults and DEVRUN_* environment variables, later sources
// overriding earlier ones. Flags are applied by the caller after Load
// returns.
func Load(opts LoadOptions) (*LoadResult, error) {
	k := koanf.New(".")
	result := &LoadResult{Sources: []string{"defaults"}}

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if !opts.SkipEnv {
		if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
		result.Sources = append(result.Sources, "env")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	result.Config = &cfg
	return result, nil
}

// envValue maps DEVRUN_GRACE_PERIOD to grace_period. Empty values are
// ignored so an exported-but-blank variable does not clear a default.
func envValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if key == "tasks" {
		return key, SplitTasks(value)
	}
	return key, value
}

// SplitTasks splits a task list written as shell words, falling back to
// whitespace separation when the quoting is malformed.
func SplitTasks(value string) []string {
	words, err := shellquote.Split(value)
	if err != nil {
		return strings.Fields(value)
	}
	return words
}
