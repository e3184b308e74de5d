package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []error
	if len(c.Tasks) == 0 {
		problems = append(problems, errors.New("tasks: at least one task is required"))
	}
	for i, task := range c.Tasks {
		if strings.TrimSpace(task) == "" {
			problems = append(problems, fmt.Errorf("tasks[%d]: task name must not be empty", i))
		}
	}
	if c.GracePeriod < 0 {
		problems = append(problems, fmt.Errorf("grace_period: must not be negative, got %s", c.GracePeriod))
	}
	if strings.TrimSpace(c.PackageManager) == "" {
		problems = append(problems, errors.New("package_manager: must not be empty"))
	}
	return errors.Join(problems...)
}
