package config

import "errors"

var (
	// ErrInvalidConfig indicates the loaded configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
