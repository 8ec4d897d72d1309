package core

import "fmt"

// ConfigError reports a setup problem that keeps a component out of the tick loop
// Missing calibration marker, unresolved collider owner, invalid capacity
type ConfigError struct {
	Component string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Component, e.Reason)
}

// NewConfigError formats a ConfigError for component
func NewConfigError(component, format string, args ...any) *ConfigError {
	return &ConfigError{Component: component, Reason: fmt.Sprintf(format, args...)}
}
