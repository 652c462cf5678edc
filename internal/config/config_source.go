package config

import "log/slog"

// SourceTypeRandomInt draws uniformly distributed integers in [Min, Max]
const SourceTypeRandomInt = "random_int"

// SourceConfig defines a fully resolved simulated source
type SourceConfig struct {
	Type string
	Min  int
	Max  int
}

// LogValue implements slog.LogValuer for structured logging
func (s SourceConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", s.Type),
		slog.Int("min", s.Min),
		slog.Int("max", s.Max),
	)
}
