package diskbtree

import (
	"errors"
	"fmt"
)

var (
	ErrConfig      = errors.New("invalid configuration")
	ErrInvalidTree = errors.New("tree invariant violated")

	ErrNotEmpty     = errors.New("tree is not empty")
	ErrKeysUnsorted = errors.New("keys must be in strictly ascending order")
)

// ConfigError reports a rejected construction parameter. It unwraps to
// ErrConfig.
type ConfigError struct {
	Field string
	Value int
	Min   int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s is %d, must be at least %d", ErrConfig, e.Field, e.Value, e.Min)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}
