package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/internal/samplegen"
	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/logger"
)

func main() {
	var (
		league    = flag.String("league", "sample", "League id and output file stem")
		out       = flag.String("out", "data", "Directory the export is written to")
		seed      = flag.Uint64("seed", 1, "Random seed; the same seed yields the same league")
		teams     = flag.Int("teams", samplegen.DefaultTeams, "Number of teams")
		pools     = flag.Int("pools", samplegen.DefaultPools, "Number of pools")
		players   = flag.Int("players", samplegen.DefaultPlayersPerTeam, "Players per team")
		rounds    = flag.Int("rounds", samplegen.DefaultRounds, "Times each pair inside a pool meets")
		variants  = flag.Float64("variants", samplegen.DefaultVariantRate, "Share of rows written with an alternate spelling")
		dupes     = flag.Float64("duplicates", samplegen.DefaultDuplicateRate, "Share of player rows repeated verbatim")
		verify    = flag.Bool("verify", true, "Load the export back and check identities fold")
		logFormat = flag.String("log-format", "text", "Log format: text or json")
	)
	flag.Parse()

	if err := logger.SetFormat(*logFormat); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &samplegen.Config{
		LeagueID:       *league,
		OutputDir:      *out,
		Seed:           *seed,
		Teams:          *teams,
		Pools:          *pools,
		PlayersPerTeam: *players,
		Rounds:         *rounds,
		VariantRate:    *variants,
		DuplicateRate:  *dupes,
		Verify:         *verify,
	}
	if _, err := samplegen.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "sample league failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
