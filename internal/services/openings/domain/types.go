// Package domain holds the data shapes and ports of the openings pipeline
package domain

import (
	"time"

	"openbook/internal/core/opening"

	"github.com/rs/zerolog"
)

// ArchiveRef is the absolute URL of a game archive found on the index page
type ArchiveRef string

// MoveList is the ordered UCI move codes of one game
type MoveList = opening.Line

// Report summarizes one pipeline run. It is logged, never persisted
type Report struct {
	RunID        string
	ArchiveURL   string
	ArchivePath  string
	ArchiveBytes int64
	RecordPath   string
	OutputPath   string

	Games   int // records read before the cap, EOF or a parse stop
	Plies   int
	Kept    int
	Dropped int

	// Partial is set when the game stream broke before its end
	Partial  bool
	ParseErr string

	Written bool

	LocateTook time.Duration
	FetchTook  time.Duration
	ReadTook   time.Duration
	WriteTook  time.Duration
	Elapsed    time.Duration
}

// MarshalZerologObject lets the report be logged with Object("report", r)
func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Str("run_id", r.RunID).
		Str("archive_url", r.ArchiveURL).
		Str("archive_path", r.ArchivePath).
		Int64("archive_bytes", r.ArchiveBytes).
		Str("record_path", r.RecordPath).
		Str("output_path", r.OutputPath).
		Int("games", r.Games).
		Int("plies", r.Plies).
		Int("kept", r.Kept).
		Int("dropped", r.Dropped).
		Bool("partial", r.Partial).
		Bool("written", r.Written).
		Int64("locate_ms", r.LocateTook.Milliseconds()).
		Int64("fetch_ms", r.FetchTook.Milliseconds()).
		Int64("read_ms", r.ReadTook.Milliseconds()).
		Int64("write_ms", r.WriteTook.Milliseconds()).
		Int64("elapsed_ms", r.Elapsed.Milliseconds())
	if r.ParseErr != "" {
		e.Str("parse_err", r.ParseErr)
	}
}
