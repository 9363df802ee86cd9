package resultproc

import (
	"errors"
	"fmt"
)

// ConfigurationError represents contradictory or invalid settings. It is
// surfaced before any tree processing starts and leads to the runtime error
// exit code.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(err error) *ConfigurationError {
	return &ConfigurationError{Err: err}
}

// IsConfigurationError checks if the error is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return err != nil && errors.As(err, &cfgErr)
}

// NoArtifactsError represents a run where every report output was disabled,
// so processing would produce nothing.
type NoArtifactsError struct{}

func (e *NoArtifactsError) Error() string {
	return "no outputs created: all report artifacts are disabled"
}

// NewNoArtifactsError creates a new NoArtifactsError
func NewNoArtifactsError() *NoArtifactsError {
	return &NoArtifactsError{}
}

// IsNoArtifactsError checks if the error is or wraps a NoArtifactsError
func IsNoArtifactsError(err error) bool {
	var naErr *NoArtifactsError
	return err != nil && errors.As(err, &naErr)
}
