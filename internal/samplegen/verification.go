package samplegen

import (
	"context"
	"errors"
	"fmt"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/adapters/datastore"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/domain/engine"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/logger"
)

// ErrVerification reports an export whose spellings did not fold back to
// the generated entities.
var ErrVerification = errors.New("verification failed")

// verify reads the written export through the file store and builds a
// snapshot with default options, dropping the verbatim duplicate rows the
// generator injects.
func verify(ctx context.Context, cfg *Config, stats *Stats) error {
	ds, err := datastore.Dataset(ctx, datastore.NewFileStore(cfg.OutputDir), cfg.LeagueID)
	if err != nil {
		return fmt.Errorf("load export: %w", err)
	}
	opts := engine.DefaultOptions()
	opts.DropDuplicateRows = true
	snap := engine.Build(ds, opts, nil)
	stats.ResolvedPlayer = len(snap.Players)
	stats.ResolvedTeams = len(snap.Teams)

	var errs []error
	if stats.ResolvedTeams != stats.Teams {
		errs = append(errs, fmt.Errorf("%w: %d teams resolved, %d generated", ErrVerification, stats.ResolvedTeams, stats.Teams))
	}
	if stats.ResolvedPlayer != stats.Players {
		errs = append(errs, fmt.Errorf("%w: %d players resolved, %d generated", ErrVerification, stats.ResolvedPlayer, stats.Players))
	}
	if snap.Stats.DuplicateRows != stats.DuplicateRows {
		errs = append(errs, fmt.Errorf("%w: %d duplicate rows dropped, %d generated", ErrVerification, snap.Stats.DuplicateRows, stats.DuplicateRows))
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	logger.Get().Info(ctx, "export verified",
		logger.Int("players", stats.ResolvedPlayer),
		logger.Int("teams", stats.ResolvedTeams),
		logger.Int("standings", len(snap.Standings)))
	return nil
}
