package service

import "errors"

// Sentinel errors returned by Service.
var (
	ErrNotStarted       = errors.New("service not started")
	ErrNoDataStore      = errors.New("no data store configured")
	ErrBackpressure     = errors.New("refresh queue is full")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrEntityNotFound   = errors.New("entity not found")
	ErrPoolNotFound     = errors.New("pool not found")
	ErrModeNotSupported = errors.New("stat mode not supported")
)
