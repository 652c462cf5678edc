package config

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// RawMetricConfig defines one workload metric as written in YAML
type RawMetricConfig struct {
	Name    string            `yaml:"name"`
	Type    string            `yaml:"type"`
	Help    string            `yaml:"help"`
	Unit    string            `yaml:"unit,omitempty"`
	Labels  map[string]string `yaml:"labels,omitempty"`
	Buckets RawBucketsConfig  `yaml:"buckets,omitempty"`
	Source  RawSourceConfig   `yaml:"source"`
}

// UnmarshalYAML handles aliasing for help and labels.
func (m *RawMetricConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawMetricConfig RawMetricConfig // Avoid recursion
	var mc rawMetricConfig
	if err := value.Decode(&mc); err != nil {
		return err
	}
	*m = RawMetricConfig(mc)

	// Check raw node for aliases
	var aliases struct {
		Description *string           `yaml:"description"`
		Attributes  map[string]string `yaml:"attributes"`
	}
	if err := value.Decode(&aliases); err != nil {
		return err
	}

	// Handle alias: description -> help
	if aliases.Description != nil {
		if m.Help != "" {
			return fmt.Errorf("cannot specify both 'help' and 'description'")
		}
		m.Help = *aliases.Description
	}

	// Handle alias: attributes -> labels
	if aliases.Attributes != nil {
		if m.Labels != nil {
			return fmt.Errorf("cannot specify both 'labels' and 'attributes'")
		}
		m.Labels = aliases.Attributes
	}

	return nil
}

// RawBucketsConfig supports an explicit bound list or a generated layout
type RawBucketsConfig struct {
	Explicit []float64
	Linear   *RawBucketLayout
	Exponent *RawBucketLayout
}

// RawBucketLayout generates count bounds from start by width or factor
type RawBucketLayout struct {
	Start  float64 `yaml:"start"`
	Width  float64 `yaml:"width,omitempty"`
	Factor float64 `yaml:"factor,omitempty"`
	Count  int     `yaml:"count"`
}

// UnmarshalYAML handles both list ([1, 5, 10]) and layout forms.
func (b *RawBucketsConfig) UnmarshalYAML(value *yaml.Node) error {
	// Try list form first
	var explicit []float64
	if err := value.Decode(&explicit); err == nil {
		b.Explicit = explicit
		return nil
	}

	// Fall back to layout form
	var layout struct {
		Linear      *RawBucketLayout `yaml:"linear"`
		Exponential *RawBucketLayout `yaml:"exponential"`
	}
	if err := value.Decode(&layout); err != nil {
		return err
	}
	if layout.Linear != nil && layout.Exponential != nil {
		return fmt.Errorf("cannot specify both 'linear' and 'exponential' buckets")
	}
	b.Linear = layout.Linear
	b.Exponent = layout.Exponential
	return nil
}

// IsZero reports whether no buckets were configured.
func (b RawBucketsConfig) IsZero() bool {
	return b.Explicit == nil && b.Linear == nil && b.Exponent == nil
}
