package samplegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/logger"
)

// Run generates a league, writes it to <OutputDir>/<LeagueID>.yaml and,
// when asked, verifies the export resolves back to the generated rosters.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	lg, err := Generate(ctx, cfg, stats)
	if err != nil {
		return nil, fmt.Errorf("generate league: %w", err)
	}

	path, err := Write(cfg.OutputDir, lg)
	if err != nil {
		return nil, err
	}
	logger.Get().Info(ctx, "wrote league export", logger.String("path", path))

	if cfg.Verify {
		if err := verify(ctx, cfg, stats); err != nil {
			return stats, err
		}
	}

	stats.Duration = time.Since(start)
	printSummary(ctx, stats)
	return stats, nil
}

// Write encodes lg as YAML into dir and returns the file path.
func Write(dir string, lg *League) (string, error) {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	data, err := yaml.Marshal(lg)
	if err != nil {
		return "", fmt.Errorf("encode league: %w", err)
	}
	path := filepath.Join(dir, lg.LeagueID+".yaml")
	if err := os.WriteFile(path, data, filePermission); err != nil {
		return "", fmt.Errorf("write league: %w", err)
	}
	return path, nil
}

func printSummary(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "sample league summary",
		logger.Int("teams", stats.Teams),
		logger.Int("players", stats.Players),
		logger.Int("games", stats.Games),
		logger.Int("playerRows", stats.PlayerRows),
		logger.Int("teamRows", stats.TeamRows),
		logger.Int("variantRows", stats.VariantRows),
		logger.Int("duplicateRows", stats.DuplicateRows),
		logger.Int("resolvedPlayers", stats.ResolvedPlayer),
		logger.Int("resolvedTeams", stats.ResolvedTeams),
		logger.Duration("duration", stats.Duration))
}
