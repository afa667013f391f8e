package domain

import "context"

// RunnerPort is the public port exposed by the module
type RunnerPort interface {
	Run(ctx context.Context) (Report, error)
}

// Locator finds the current archive on an index page
type Locator interface {
	Locate(ctx context.Context, indexURL string) (ArchiveRef, error)
}

// Fetcher stores the archive at dst and returns the bytes written
type Fetcher interface {
	Fetch(ctx context.Context, ref ArchiveRef, dst string) (int64, error)
}

// Unpacker extracts the record file from a local archive and returns its path
type Unpacker interface {
	Unpack(archivePath, workDir, ext string) (string, error)
}

// GameSource yields one move list per game; io.EOF when exhausted
type GameSource interface {
	Next() (MoveList, error)
	Close() error
	Stats() (games, plies int) // zeros if not supported
}

// SourceFactory opens a record file as a GameSource capped at maxPly moves per game
type SourceFactory interface {
	Open(path string, maxPly int) (GameSource, error)
}

// DatasetWriter persists the final openings collection
type DatasetWriter interface {
	Write(path string, openings []MoveList) error
}
