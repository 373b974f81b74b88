package core

import "go.uber.org/zap"

// Default tuning values, mirroring original_source/config.h's CN_* constants.
const (
	DefaultPrecision             = 1e-5
	DefaultUseCardinal           = true
	DefaultUseDisjointSplitting  = true
	DefaultConnectedness         = 2
	DefaultFocalWeight           = 1.0
	DefaultAgentSize             = 0.353
	DefaultHLHType               = 2
	DefaultTimeLimit             = 30.0
	MinConnectedness             = 2
	MaxConnectedness             = 5
	MaxAgentSize                 = 0.5
)

// Config holds every tunable option from spec.md §6. All fields are
// optional; DefaultConfig supplies the documented defaults and Normalize
// resets any out-of-domain value back to its default (the InvalidConfig
// handling of spec.md §7), logging a warning for each field it corrects.
type Config struct {
	Precision             float64
	UseCardinal           bool
	UseDisjointSplitting  bool
	Connectedness         int
	FocalWeight           float64
	AgentSize             float64
	HLHType               int
	TimeLimit             float64
}

// DefaultConfig returns a Config populated with the documented defaults.
func DefaultConfig() Config {
	return Config{
		Precision:            DefaultPrecision,
		UseCardinal:          DefaultUseCardinal,
		UseDisjointSplitting: DefaultUseDisjointSplitting,
		Connectedness:        DefaultConnectedness,
		FocalWeight:          DefaultFocalWeight,
		AgentSize:            DefaultAgentSize,
		HLHType:              DefaultHLHType,
		TimeLimit:            DefaultTimeLimit,
	}
}

// Normalize clamps every out-of-domain field back to its default, logging
// one warning per corrected field. A nil logger is accepted (no-op).
func (c *Config) Normalize(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if c.Precision <= 0 || c.Precision > 1 {
		logger.Warn("invalid precision, using default", zap.Float64("value", c.Precision), zap.Float64("default", DefaultPrecision))
		c.Precision = DefaultPrecision
	}
	if c.Connectedness < MinConnectedness || c.Connectedness > MaxConnectedness {
		logger.Warn("invalid connectedness, using default", zap.Int("value", c.Connectedness), zap.Int("default", DefaultConnectedness))
		c.Connectedness = DefaultConnectedness
	}
	if c.FocalWeight < 1.0 {
		logger.Warn("invalid focal_weight, using default", zap.Float64("value", c.FocalWeight), zap.Float64("default", DefaultFocalWeight))
		c.FocalWeight = DefaultFocalWeight
	}
	if c.AgentSize <= 0 || c.AgentSize > MaxAgentSize {
		logger.Warn("invalid agent_size, using default", zap.Float64("value", c.AgentSize), zap.Float64("default", DefaultAgentSize))
		c.AgentSize = DefaultAgentSize
	}
	if c.HLHType < 0 || c.HLHType > 2 {
		logger.Warn("invalid hlh_type, using default", zap.Int("value", c.HLHType), zap.Int("default", DefaultHLHType))
		c.HLHType = DefaultHLHType
	}
	if c.TimeLimit < 0 {
		logger.Warn("invalid time_limit, using default", zap.Float64("value", c.TimeLimit), zap.Float64("default", DefaultTimeLimit))
		c.TimeLimit = DefaultTimeLimit
	}
	// A TimeLimit of 0 means "no limit" (treated as +Inf by the orchestrator).
}
