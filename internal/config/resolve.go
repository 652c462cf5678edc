package config

import (
	"fmt"
	"strings"
)

// Resolver turns a raw config into a resolved one
type Resolver struct {
	raw *RawConfig

	// Namespace tracking (metric name -> index)
	registeredNames map[string]int
}

// newResolver creates a new resolver
func newResolver(raw *RawConfig) *Resolver {
	return &Resolver{
		raw:             raw,
		registeredNames: make(map[string]int),
	}
}

// Resolve applies defaults, validates and builds the final config
func Resolve(raw *RawConfig) (*Config, error) {
	r := newResolver(raw)

	// Phase 1: Resolve workload
	workload, err := r.resolveWorkload()
	if err != nil {
		return nil, err
	}

	// Phase 2: Resolve export config
	export, err := resolveExport(&raw.Export)
	if err != nil {
		return nil, err
	}

	// Phase 3: Resolve settings config
	settings, err := resolveSettings(&raw.Settings)
	if err != nil {
		return nil, err
	}

	return &Config{
		Export:   export,
		Workload: workload,
		Settings: settings,
	}, nil
}

// registerName validates namespace uniqueness and registers the name
func (r *Resolver) registerName(name string, index int) error {
	if existing, exists := r.registeredNames[name]; exists {
		return fmt.Errorf("metric name %q at index %d already used at index %d", name, index, existing)
	}
	r.registeredNames[name] = index
	return nil
}

// resolveContext tracks resolution path for error messages
type resolveContext []string

func (ctx resolveContext) push(component, name string) resolveContext {
	return append(ctx, fmt.Sprintf("%s %q", component, name))
}

func (ctx resolveContext) error(msg string) error {
	if len(ctx) == 0 {
		return fmt.Errorf("%s", msg)
	}

	var b strings.Builder
	b.WriteString(msg)
	// Print stack top-down (innermost component first)
	for i := len(ctx) - 1; i >= 0; i-- {
		b.WriteString("\n  in ")
		b.WriteString(ctx[i])
	}
	return fmt.Errorf("%s", b.String())
}
