package planner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChainHint adds a fixed heuristic bonus when a goal fact is requested
// but its prerequisite resource fact is absent from the current state,
// estimating the cost of a known multi-step gathering chain (e.g. the
// goal wants sticks but the world holds no tree yet).
//
// Hints break heuristic admissibility by design and are preserved
// because concrete step factories are written assuming they exist.
type ChainHint struct {
	// Goal is the fact name whose presence in the goal triggers the hint.
	Goal string `yaml:"goal"`

	// Prerequisite is the resource fact that must be present (and, for
	// booleans, true) in the current state to suppress the bonus.
	Prerequisite string `yaml:"prerequisite"`

	// Bonus is the fixed cost added when the prerequisite is absent.
	Bonus float64 `yaml:"bonus"`
}

// Config tunes the search. The zero value is not usable; start from
// DefaultConfig or LoadConfig.
type Config struct {
	// MaxDepth is the maximum plan length considered. Nodes deeper than
	// this are discarded without expansion.
	MaxDepth int `yaml:"max_depth"`

	// MaxOpenSet bounds the open set. When exceeded, only the best half
	// (by f) is kept — a deliberate incompleteness trade-off.
	MaxOpenSet int `yaml:"max_open_set"`

	// BeamWidth is the number of best candidates the concurrent planner
	// dequeues and expands per round.
	BeamWidth int `yaml:"beam_width"`

	// FanoutThreshold is the legal-step count above which a single
	// candidate's successor generation is itself parallelized.
	FanoutThreshold int `yaml:"fanout_threshold"`

	// ChainHints are resource-chain heuristic bonuses, by fact name.
	ChainHints []ChainHint `yaml:"chain_hints,omitempty"`
}

// DefaultConfig returns the default search tuning.
func DefaultConfig() Config {
	return Config{
		MaxDepth:        50,
		MaxOpenSet:      4096,
		BeamWidth:       8,
		FanoutThreshold: 16,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.MaxOpenSet < 2 {
		return fmt.Errorf("max_open_set must be at least 2, got %d", c.MaxOpenSet)
	}
	if c.BeamWidth <= 0 {
		return fmt.Errorf("beam_width must be positive, got %d", c.BeamWidth)
	}
	if c.FanoutThreshold <= 0 {
		return fmt.Errorf("fanout_threshold must be positive, got %d", c.FanoutThreshold)
	}
	for i, h := range c.ChainHints {
		if h.Goal == "" || h.Prerequisite == "" {
			return fmt.Errorf("chain_hints[%d]: goal and prerequisite are required", i)
		}
		if h.Bonus < 0 {
			return fmt.Errorf("chain_hints[%d]: bonus must be non-negative, got %v", i, h.Bonus)
		}
	}
	return nil
}

// LoadConfig reads a YAML configuration file, applying defaults for
// any omitted field.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading planner config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing planner config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid planner config: %w", err)
	}
	return cfg, nil
}
