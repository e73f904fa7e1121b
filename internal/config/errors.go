package config

import (
	"errors"
)

// Sentinel errors; callers match them with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")

	// ErrUnknownDataSource accompanies ErrInvalidConfig when data_source is
	// neither file nor postgres.
	ErrUnknownDataSource = errors.New("unknown data_source")
)
