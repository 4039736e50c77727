package types

import "errors"

// Config holds backend selection and storage parameters shared by the
// factory, the store, and the CLI.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// Supported backend names.
const (
	BackendArray  = "array"
	BackendLinked = "linked"
)

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrLogLevelUnknown = errors.New("unknown log level")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendArray:  true,
	BackendLinked: true,
}

// knownLogLevels lists the log levels that Validate accepts. An empty level
// selects the default.
var knownLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Backends returns the supported backend names in a stable order.
func Backends() []string {
	return []string{BackendArray, BackendLinked}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	return nil
}
