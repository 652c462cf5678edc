package config

import (
	"fmt"
)

// Validate performs syntactic validation on raw config
func Validate(raw *RawConfig) error {
	return validateRawSyntax(raw)
}

// validateRawSyntax performs basic syntactic validation on raw config
func validateRawSyntax(raw *RawConfig) error {
	for i, metric := range raw.Workload.Metrics {
		if metric.Name == "" {
			return fmt.Errorf("metric at index %d: name cannot be empty", i)
		}

		if metric.Type == "" {
			return fmt.Errorf("metric %q: type cannot be empty", metric.Name)
		}

		if metric.Help == "" {
			return fmt.Errorf("metric %q: help cannot be empty", metric.Name)
		}
	}

	return nil
}
