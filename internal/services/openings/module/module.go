// Package module provides the openings module implementation
package module

import (
	"openbook/internal/core/opening"
	"openbook/internal/modkit"
	"openbook/internal/services/openings/domain"
	"openbook/internal/services/openings/ingest"
	"openbook/internal/services/openings/repo"
	"openbook/internal/services/openings/service"
)

// Ports defines the openings module ports
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements the openings module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the openings module.
// It validates options read from deps.Cfg and wires the adapters and the service
func New(deps modkit.Deps) (*Module, error) {
	opts := FromConfig(deps.Cfg)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Non-DB adapters
	client := ingest.NewClient(deps) // uses CORE_INGEST_* from deps.Cfg
	loc, err := ingest.NewLocator(client, opts.ArchivePattern)
	if err != nil {
		return nil, err
	}
	fetch := ingest.NewFetcher(client)
	unpack := ingest.NewUnpacker()
	sources := ingest.NewSourceFactory()
	writer := repo.NewJSON()

	svc := service.New(
		loc, fetch, unpack, sources, writer,
		opening.NewShuffler(opts.Seed),
		service.Config{
			IndexURL:     opts.IndexURL,
			ArchivePath:  opts.ArchivePath,
			WorkDir:      opts.WorkDir,
			RecordExt:    opts.RecordExt,
			OutputPath:   opts.OutputPath,
			ExtractMoves: opts.ExtractMoves,
			MaxGames:     opts.MaxGames,
			MinMoves:     opts.MinMoves,
			RunTimeout:   opts.RunTimeout,
			FetchTimeout: opts.FetchTimeout,
			ReadTimeout:  opts.ReadTimeout,
		},
	)

	deps.Logger("openings").Debug().
		Str("index_url", opts.IndexURL).
		Str("output", opts.OutputPath).
		Int("max_games", opts.MaxGames).
		Bool("seeded", opts.Seed != 0).
		Msg("openings module wired")

	m := &Module{deps: deps, opts: opts}
	m.ports = Ports{Runner: svc}
	return m, nil
}

// Name returns the module name
func (m *Module) Name() string { return "openings" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Options returns the validated options the module was built with
func (m *Module) Options() Options { return m.opts }
