package service

import (
	"time"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/datastore"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/repository"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/engine"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDataStore sets where league data is read from.
func WithDataStore(store datastore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSnapshotStore replaces the in-memory snapshot store.
func WithSnapshotStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.snapshots = store
		}
	}
}

// WithEngineOptions sets identity resolution and merge options.
func WithEngineOptions(opts engine.Options) Option {
	return func(s *Service) {
		s.engineOpts = opts
	}
}

// WithWorkerCount sets the number of refresh workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of pending refresh jobs.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMaxListLimit caps the rows returned by table queries.
func WithMaxListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxListLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time source used for snapshot and job timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
