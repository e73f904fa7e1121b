package repository

import "errors"

// Sentinel kinds for snapshot store errors.
var (
	ErrNotFound    = errors.New("league not found")
	ErrNilSnapshot = errors.New("nil snapshot")
	ErrNoLeagueID  = errors.New("snapshot has no league id")
)
