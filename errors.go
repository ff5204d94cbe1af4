package pomdep

import (
	"errors"
	"fmt"
)

// Sentinel errors for common resolution failures.
var (
	// ErrConfigurationNotFound indicates a target configuration (and the
	// "default" fallback) does not exist. Matched by
	// *ConfigurationNotFoundError via errors.Is.
	ErrConfigurationNotFound = errors.New("target configuration not found")

	// ErrComponentNotFound indicates a requested component version does
	// not exist in the component lookup.
	ErrComponentNotFound = errors.New("component not found")
)

// ConfigurationNotFoundError is returned when legacy configuration
// selection finds neither the requested configuration nor "default" on the
// target component. It is fatal to resolving the edge it occurred on.
type ConfigurationNotFoundError struct {
	// FromComponent identifies the component the edge originates from.
	FromComponent ComponentID

	// FromConfiguration is the configuration the edge is sourced from.
	FromConfiguration string

	// TargetComponent identifies the component the edge points at.
	TargetComponent ComponentID

	// Requested is the configuration name originally asked for, before
	// the "default" fallback was attempted.
	Requested string
}

func (e *ConfigurationNotFoundError) Error() string {
	return fmt.Sprintf("%s declares a dependency from configuration %q to configuration %q which is not declared in the descriptor for %s",
		e.FromComponent, e.FromConfiguration, e.Requested, e.TargetComponent)
}

// Unwrap lets errors.Is match ErrConfigurationNotFound.
func (e *ConfigurationNotFoundError) Unwrap() error {
	return ErrConfigurationNotFound
}
