package config

import "errors"

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrSpacesPerLevel     = errors.New("spaces_per_level must be at least 1")
	ErrMaxNestingLevel    = errors.New("max_nesting_level cannot be negative")
	ErrNoExtensions       = errors.New("markdown_extensions cannot be empty")
)
