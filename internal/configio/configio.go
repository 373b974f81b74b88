// Package configio is a thin external-collaborator adapter that parses
// JSON into a core.Config. It is deliberately outside the core: the
// algorithm never imports this package, only callers (CLI, tooling) do.
package configio

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/elektrokombinacija/mapf-ct/internal/core"
)

// jsonConfig mirrors core.Config's fields with JSON tags matching
// spec.md §6's external field names.
type jsonConfig struct {
	Precision            *float64 `json:"precision,omitempty"`
	UseCardinal          *bool    `json:"use_cardinal,omitempty"`
	UseDisjointSplitting *bool    `json:"use_disjoint_splitting,omitempty"`
	Connectedness        *int     `json:"connectedness,omitempty"`
	FocalWeight          *float64 `json:"focal_weight,omitempty"`
	AgentSize            *float64 `json:"agent_size,omitempty"`
	HLHType              *int     `json:"hlh_type,omitempty"`
	TimeLimit            *float64 `json:"timelimit,omitempty"`
}

// Decode reads a JSON document from r and overlays any present fields
// onto a DefaultConfig. Absent fields keep their default. The caller is
// still responsible for calling Config.Normalize before use.
func Decode(r io.Reader) (core.Config, error) {
	cfg := core.DefaultConfig()

	var raw jsonConfig
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return cfg, errors.Wrap(err, "configio: decode")
	}

	if raw.Precision != nil {
		cfg.Precision = *raw.Precision
	}
	if raw.UseCardinal != nil {
		cfg.UseCardinal = *raw.UseCardinal
	}
	if raw.UseDisjointSplitting != nil {
		cfg.UseDisjointSplitting = *raw.UseDisjointSplitting
	}
	if raw.Connectedness != nil {
		cfg.Connectedness = *raw.Connectedness
	}
	if raw.FocalWeight != nil {
		cfg.FocalWeight = *raw.FocalWeight
	}
	if raw.AgentSize != nil {
		cfg.AgentSize = *raw.AgentSize
	}
	if raw.HLHType != nil {
		cfg.HLHType = *raw.HLHType
	}
	if raw.TimeLimit != nil {
		cfg.TimeLimit = *raw.TimeLimit
	}

	return cfg, nil
}

// Encode writes cfg as a JSON document, for round-tripping or
// persisting a normalized configuration alongside benchmark output.
func Encode(w io.Writer, cfg core.Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(jsonConfig{
		Precision:            &cfg.Precision,
		UseCardinal:          &cfg.UseCardinal,
		UseDisjointSplitting: &cfg.UseDisjointSplitting,
		Connectedness:        &cfg.Connectedness,
		FocalWeight:          &cfg.FocalWeight,
		AgentSize:            &cfg.AgentSize,
		HLHType:              &cfg.HLHType,
		TimeLimit:            &cfg.TimeLimit,
	}), "configio: encode")
}
