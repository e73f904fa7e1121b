// Package service wires the data store, refresh pipeline and snapshot store
// into the operations the HTTP API serves.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/datastore"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/mq/queue"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/mq/worker"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/repository"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/dedupe"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/engine"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/model"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/types"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/logger"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/metrics"
)

const (
	defaultQueueSize    = 1024
	defaultMaxListLimit = 500
	shutdownTimeout     = 30 * time.Second
)

// Service owns the refresh pipeline and answers read queries from the
// published snapshots.
type Service struct {
	mu sync.RWMutex

	store      datastore.Store
	snapshots  repository.Store
	deduper    dedupe.Deduper
	queue      *queue.InMemoryQueue
	workerPool *worker.Pool
	engineOpts engine.Options

	workerCount  int
	queueSize    int
	maxListLimit int

	locksMu     sync.Mutex
	leagueLocks map[string]*sync.Mutex

	started bool
	now     func() time.Time
	logger  logger.Logger
}

// New constructs a Service. Snapshots survive Stop and Start.
func New(opts ...Option) *Service {
	s := &Service{
		snapshots:    repository.NewSnapshotStore(),
		engineOpts:   engine.DefaultOptions(),
		workerCount:  runtime.NumCPU(),
		queueSize:    defaultQueueSize,
		maxListLimit: defaultMaxListLimit,
		leagueLocks:  make(map[string]*sync.Mutex),
		now:          time.Now,
		logger:       logger.Get().Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2*s.queueSize), dedupe.WithClock(s.now))
	return s
}

// Start creates the refresh queue and starts the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil {
		return ErrNoDataStore
	}

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.workerPool = worker.NewPool(s.workerCount, s.queue, worker.ProcessorFunc(s.process))
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "stats service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)
	return nil
}

// Stop closes the queue and waits for in-flight refreshes.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}
	for _, key := range s.deduper.Keys() {
		s.deduper.Unrecord(ctx, key)
	}
	s.started = false
	s.logger.Info(ctx, "stats service stopped")
}

// RequestRefresh schedules a rebuild of leagueID. A request for a league
// that is already queued is coalesced into the pending job.
func (s *Service) RequestRefresh(ctx context.Context, leagueID string, reason model.RefreshReason) (types.RefreshAck, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return types.RefreshAck{}, fmt.Errorf("%w: empty league id", ErrInvalidArgument)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return types.RefreshAck{}, ErrNotStarted
	}

	if s.deduper.SeenAndRecord(ctx, leagueID) {
		metrics.RecordRefreshCoalesced()
		since, _ := s.deduper.Since(leagueID)
		return types.RefreshAck{Status: types.StatusCoalesced, LeagueID: leagueID, RequestedAt: since}, nil
	}

	job := queue.Job{
		JobID:       uuid.NewString(),
		LeagueID:    leagueID,
		Reason:      reason,
		RequestedAt: s.now(),
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		s.deduper.Unrecord(ctx, leagueID)
		if errors.Is(err, queue.ErrQueueFull) {
			return types.RefreshAck{}, fmt.Errorf("%w: %s", ErrBackpressure, leagueID)
		}
		return types.RefreshAck{}, fmt.Errorf("enqueue refresh: %w", err)
	}

	s.logger.Debug(ctx, "refresh queued",
		logger.String("league_id", leagueID),
		logger.String("job_id", job.JobID),
		logger.String("reason", string(reason)),
	)
	return types.RefreshAck{Status: types.StatusQueued, LeagueID: leagueID, JobID: job.JobID, RequestedAt: job.RequestedAt}, nil
}

// process is the worker entry point. The pending mark is cleared first so a
// request arriving mid-build schedules another pass over fresher data.
func (s *Service) process(ctx context.Context, job queue.Job) error {
	s.deduper.Unrecord(ctx, job.LeagueID)
	_, err := s.Refresh(ctx, job.LeagueID)
	return err
}

// Refresh synchronously rebuilds and publishes one league snapshot.
// Concurrent refreshes of the same league run one at a time so each build
// sees the ranks published by the previous one.
func (s *Service) Refresh(ctx context.Context, leagueID string) (*engine.Snapshot, error) {
	if s.store == nil {
		return nil, ErrNoDataStore
	}
	lock := s.leagueLock(leagueID)
	lock.Lock()
	defer lock.Unlock()

	log := s.logger.With(logger.String("league_id", leagueID))
	start := time.Now()
	fail := func(stage string, err error) (*engine.Snapshot, error) {
		metrics.RecordRefresh("error", float64(time.Since(start).Milliseconds()))
		metrics.RecordRefreshError()
		metrics.RecordErrorByComponent("service", stage)
		log.Error(ctx, "refresh failed", logger.String("stage", stage), logger.Error(err))
		return nil, fmt.Errorf("refresh %s: %w", leagueID, err)
	}

	ds, err := datastore.Dataset(ctx, s.store, leagueID)
	if err != nil {
		return fail("load", err)
	}
	if ds.LeagueID == "" {
		ds.LeagueID = leagueID
	}

	snap := engine.Build(ds, s.engineOpts, s.snapshots.PreviousRanks(ctx, leagueID))
	snap.BuiltAt = s.now()
	if err := s.snapshots.Publish(ctx, snap); err != nil {
		return fail("publish", err)
	}

	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordRecordsIngested("player", len(ds.PlayerRecords))
	metrics.RecordRecordsIngested("team", len(ds.TeamRecords))
	metrics.RecordDuplicateRows(snap.Stats.DuplicateRows)
	metrics.RecordAliasFolds("player", snap.Stats.PlayerAliasFolds)
	metrics.RecordAliasFolds("team", snap.Stats.TeamAliasFolds)
	metrics.RecordStandingsComputed(len(snap.Standings))
	metrics.RecordRefresh("ok", ms)

	log.Info(ctx, "league refreshed",
		logger.Int("players", len(snap.Players)),
		logger.Int("teams", len(snap.Teams)),
		logger.Int("results", snap.Stats.Results),
		logger.Int("duplicates", snap.Stats.DuplicateRows),
		logger.Float64("ms", ms),
	)
	return snap, nil
}

func (s *Service) leagueLock(leagueID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.leagueLocks[leagueID]
	if !ok {
		l = &sync.Mutex{}
		s.leagueLocks[leagueID] = l
	}
	return l
}

// Pending lists leagues with a queued refresh, oldest first.
func (s *Service) Pending() []string {
	return s.deduper.Keys()
}

// Size returns the number of leagues with a queued refresh.
func (s *Service) Size() int64 {
	return s.deduper.Size()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	leagues := s.snapshots.Leagues(ctx)
	stats := map[string]any{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"pending":      s.deduper.Size(),
		"leagues":      leagues,
		"leagueCount":  len(leagues),
		"maxListLimit": s.maxListLimit,
	}
	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["processed"] = s.workerPool.Processed()
		stats["failed"] = s.workerPool.Failed()
		metrics.UpdateWorkerCount(s.workerCount)
	}
	return stats
}
