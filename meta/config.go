// Package meta implements the meta-engine orchestrator that selects the
// execution strategy for a compiled glob pattern.
//
// The meta-engine coordinates:
//   - Literal search: patterns without wildcards need no automaton
//   - Prefilters: the leading literal run finds candidate starts, and the
//     required-literal set rejects input missing any literal run
//   - BoundedBacktracker: fastest engine when its visited table fits
//   - PikeVM: linear-memory fallback for large inputs
//
// The meta-engine hides multi-engine coordination behind Find,
// FindSubmatch and IsMatch.
package meta

import "strconv"

// EngineKind forces a particular execution engine.
type EngineKind uint8

const (
	// EngineAuto lets the engine pick the strategy (default).
	EngineAuto EngineKind = iota

	// EngineBacktrack always runs an automaton, using the
	// BoundedBacktracker whenever the input fits.
	EngineBacktrack

	// EnginePikeVM always runs the PikeVM.
	EnginePikeVM
)

// String returns a human-readable representation of the EngineKind.
func (k EngineKind) String() string {
	switch k {
	case EngineAuto:
		return "auto"
	case EngineBacktrack:
		return "backtrack"
	case EnginePikeVM:
		return "pikevm"
	default:
		return "EngineKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseEngineKind converts "auto", "backtrack" or "pikevm" to an EngineKind.
func ParseEngineKind(s string) (EngineKind, error) {
	switch s {
	case "", "auto":
		return EngineAuto, nil
	case "backtrack":
		return EngineBacktrack, nil
	case "pikevm":
		return EnginePikeVM, nil
	default:
		return EngineAuto, &ConfigError{
			Field:   "Engine",
			Message: "unknown engine " + strconv.Quote(s),
		}
	}
}

// Config controls meta-engine behavior and performance characteristics.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.Engine = meta.EnginePikeVM // Force NFA-only execution
//	engine, err := meta.CompileWithConfig("f(*)", config)
type Config struct {
	// EnablePrefilter enables the leading-literal prefilter.
	// Default: true
	EnablePrefilter bool

	// EnableRequiredSet enables rejection of inputs that lack one of the
	// pattern's literal runs. Only used for patterns with two or more runs.
	// Default: true
	EnableRequiredSet bool

	// MinRequiredSetInput is the smallest input (in bytes, from the search
	// start) for which the required-literal check runs.
	// Default: 4096
	MinRequiredSetInput int

	// MaxBacktrackBits limits the BoundedBacktracker's visited table.
	// Inputs needing more bits use the PikeVM.
	// Default: 256KB worth of bits
	MaxBacktrackBits int

	// Engine forces an execution engine.
	// Default: EngineAuto
	Engine EngineKind

	// EscapeAny makes a backslash escape any following character instead of
	// only '*', '.' and '\'.
	// Default: false
	EscapeAny bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:     true,
		EnableRequiredSet:   true,
		MinRequiredSetInput: 4096,
		MaxBacktrackBits:    256 * 1024 * 8,
		Engine:              EngineAuto,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MinRequiredSetInput: 0 to 1<<30
//   - MaxBacktrackBits: 1024 to 1<<30
//   - Engine: EngineAuto, EngineBacktrack or EnginePikeVM
func (c Config) Validate() error {
	if c.EnableRequiredSet {
		if c.MinRequiredSetInput < 0 || c.MinRequiredSetInput > 1<<30 {
			return &ConfigError{
				Field:   "MinRequiredSetInput",
				Message: "must be between 0 and 1073741824",
			}
		}
	}

	if c.MaxBacktrackBits < 1024 || c.MaxBacktrackBits > 1<<30 {
		return &ConfigError{
			Field:   "MaxBacktrackBits",
			Message: "must be between 1024 and 1073741824",
		}
	}

	if c.Engine > EnginePikeVM {
		return &ConfigError{
			Field:   "Engine",
			Message: "unknown engine " + c.Engine.String(),
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "coreglob: invalid config: " + e.Field + ": " + e.Message
}
