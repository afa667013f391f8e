package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"openbook/internal/core/version"
	"openbook/internal/modkit"
	"openbook/internal/modkit/module"
	"openbook/internal/platform/config"
	perr "openbook/internal/platform/errors"
	"openbook/internal/platform/logger"

	openingsdom "openbook/internal/services/openings/domain"
	openingsmod "openbook/internal/services/openings/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	l := logger.Get()

	var (
		fOut      = flag.String("out", "", "dataset path (overrides CORE_OPENINGS_OUTPUT_PATH)")
		fWorkDir  = flag.String("work-dir", "", "directory for the archive record file (overrides CORE_OPENINGS_WORK_DIR)")
		fMaxGames = flag.Int("max-games", 0, "games to read at most (overrides CORE_OPENINGS_MAX_GAMES)")
		fSeed     = flag.Int64("seed", 0, "shuffle seed, 0 = random (overrides CORE_OPENINGS_SEED)")
	)
	flag.Parse()

	// Surface flags to the module, which reads FromConfig
	mustSetEnv("CORE_OPENINGS_OUTPUT_PATH", *fOut)
	mustSetEnv("CORE_OPENINGS_WORK_DIR", *fWorkDir)
	if *fMaxGames > 0 {
		mustSetEnv("CORE_OPENINGS_MAX_GAMES", strconv.Itoa(*fMaxGames))
	}
	if *fSeed != 0 {
		mustSetEnv("CORE_OPENINGS_SEED", strconv.FormatInt(*fSeed, 10))
	}

	l.Info().Object("build", version.Info("openbook-build")).Msg("starting")

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
	}
	m, err := openingsmod.New(deps)
	if err != nil {
		l.Error().Err(err).Msg("openings module config invalid")
		os.Exit(perr.ExitCode(perr.CodeOf(err)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := module.MustPortsOf[openingsdom.RunnerPort](m)
	rep, err := runner.Run(ctx)
	if err != nil {
		stop()
		os.Exit(perr.ExitCode(perr.CodeOf(err)))
	}
	if rep.Partial {
		l.Warn().Str("run_id", rep.RunID).Str("parse_err", rep.ParseErr).Msg("dataset written from a partial game stream")
	}
}
