// Package service runs the openings pipeline: locate, fetch, unpack, read,
// extract, shuffle, write. Stages run strictly in order on one goroutine
package service

import (
	"context"
	"io"
	"time"

	"openbook/internal/core/opening"
	perr "openbook/internal/platform/errors"
	"openbook/internal/platform/logger"
	"openbook/internal/services/openings/domain"
	"openbook/internal/services/openings/guardrails"

	"github.com/google/uuid"
)

// Config is the immutable run configuration
type Config struct {
	IndexURL    string
	ArchivePath string
	WorkDir     string
	RecordExt   string
	OutputPath  string

	ExtractMoves int // plies kept per game
	MaxGames     int // games read at most; <=0 -> unlimited
	MinMoves     int // keep lines strictly longer than this

	RunTimeout   time.Duration
	FetchTimeout time.Duration
	ReadTimeout  time.Duration
}

// Service implements domain.RunnerPort
type Service struct {
	Locate  domain.Locator
	Fetch   domain.Fetcher
	Unpack  domain.Unpacker
	Sources domain.SourceFactory
	Writer  domain.DatasetWriter
	Shuffle opening.Shuffler
	Cfg     Config
}

// newRunID is a seam for tests
var newRunID = uuid.NewString

// New constructs the openings service; a nil shuffler uses frand
func New(
	loc domain.Locator,
	f domain.Fetcher,
	u domain.Unpacker,
	sf domain.SourceFactory,
	w domain.DatasetWriter,
	shuffle opening.Shuffler,
	cfg Config,
) *Service {
	if loc == nil || f == nil || u == nil || sf == nil || w == nil {
		panic("openings.Service requires every port")
	}
	if shuffle == nil {
		shuffle = opening.NewShuffler(0)
	}
	return &Service{
		Locate: loc, Fetch: f, Unpack: u, Sources: sf, Writer: w,
		Shuffle: shuffle,
		Cfg:     cfg,
	}
}

// Run executes one pipeline run. The returned Report describes how far the run got
// even when err is non-nil. A game stream that stops on a Parse error is not an
// error: whatever was read, possibly nothing, is written and Report.Partial is set
func (s *Service) Run(ctx context.Context) (rep domain.Report, retErr error) {
	rep = domain.Report{
		RunID:       newRunID(),
		ArchivePath: s.Cfg.ArchivePath,
		OutputPath:  s.Cfg.OutputPath,
	}
	ctx = logger.WithRun(ctx, rep.RunID)

	tos := guardrails.Timeouts{
		Run:   s.Cfg.RunTimeout,
		Fetch: s.Cfg.FetchTimeout,
		Read:  s.Cfg.ReadTimeout,
	}
	runCtx, runCancel := guardrails.WithRun(ctx, tos)
	defer runCancel()

	start := time.Now()
	defer func() {
		rep.Elapsed = time.Since(start)
		if retErr != nil {
			logger.C(ctx).Error().Err(retErr).
				Str("code", perr.CodeOf(retErr).String()).
				Object("report", rep).
				Msg("openings: run failed")
			return
		}
		logger.C(ctx).Info().Object("report", rep).Msg("openings: run finished")
	}()

	// Locate
	tl := time.Now()
	ref, err := s.locate(logger.WithStage(runCtx, "locate"), tos)
	rep.LocateTook = time.Since(tl)
	if err != nil {
		return rep, err
	}
	rep.ArchiveURL = string(ref)

	// Fetch
	t0 := time.Now()
	n, err := s.fetch(logger.WithStage(runCtx, "fetch"), tos, ref)
	rep.ArchiveBytes = n
	rep.FetchTook = time.Since(t0)
	if err != nil {
		return rep, err
	}

	// Unpack
	recPath, err := s.Unpack.Unpack(s.Cfg.ArchivePath, s.Cfg.WorkDir, s.Cfg.RecordExt)
	if err != nil {
		return rep, err
	}
	rep.RecordPath = recPath
	logger.C(runCtx).Debug().Str("record", recPath).Msg("openings: record file ready")

	// Read (timeoutable)
	t1 := time.Now()
	readCtx, readCancel := guardrails.ForRead(logger.WithStage(runCtx, "read"), tos)
	games, err := s.read(readCtx, recPath, &rep)
	readCancel()
	rep.ReadTook = time.Since(t1)
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeParse) {
			return rep, err
		}
		rep.Partial = true
		rep.ParseErr = err.Error()
		logger.C(readCtx).Warn().Err(err).Int("games", rep.Games).
			Msg("openings: game stream broke; keeping partial result")
	}

	// Extract + shuffle
	kept, dropped := opening.Extract(games, s.Cfg.ExtractMoves, s.Cfg.MinMoves)
	rep.Kept, rep.Dropped = len(kept), dropped
	opening.Shuffle(kept, s.Shuffle)

	// Write
	t2 := time.Now()
	if err := s.Writer.Write(s.Cfg.OutputPath, kept); err != nil {
		return rep, err
	}
	rep.WriteTook = time.Since(t2)
	rep.Written = true
	return rep, nil
}

func (s *Service) locate(ctx context.Context, tos guardrails.Timeouts) (domain.ArchiveRef, error) {
	fctx, cancel := guardrails.ForFetch(ctx, tos)
	defer cancel()
	ref, err := s.Locate.Locate(fctx, s.Cfg.IndexURL)
	if err != nil {
		return "", err
	}
	logger.C(ctx).Info().Str("archive", string(ref)).Msg("openings: archive located")
	return ref, nil
}

func (s *Service) fetch(ctx context.Context, tos guardrails.Timeouts, ref domain.ArchiveRef) (int64, error) {
	fctx, cancel := guardrails.ForFetch(ctx, tos)
	defer cancel()
	n, err := s.Fetch.Fetch(fctx, ref, s.Cfg.ArchivePath)
	if err != nil {
		return 0, err
	}
	logger.C(ctx).Info().Int64("bytes", n).Str("dst", s.Cfg.ArchivePath).Msg("openings: archive fetched")
	return n, nil
}

// read pulls at most MaxGames games; the cap is checked before each Next so
// remaining records are never parsed
func (s *Service) read(ctx context.Context, path string, rep *domain.Report) (games []domain.MoveList, retErr error) {
	src, err := s.Sources.Open(path, s.Cfg.ExtractMoves)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && retErr == nil {
			logger.C(ctx).Warn().Err(cerr).Msg("openings: close record file")
		}
	}()

	for s.Cfg.MaxGames <= 0 || len(games) < s.Cfg.MaxGames {
		if err := ctx.Err(); err != nil {
			return games, perr.Wrap(err, perr.ErrorCodeUnknown, "openings: read budget exhausted")
		}
		mv, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return games, err
		}
		games = append(games, mv)
		rep.Games = len(games)
		rep.Plies += len(mv)
	}
	logger.C(ctx).Info().
		Int("games", rep.Games).
		Int("plies", rep.Plies).
		Bool("capped", s.Cfg.MaxGames > 0 && rep.Games >= s.Cfg.MaxGames).
		Msg("openings: games read")
	return games, nil
}
