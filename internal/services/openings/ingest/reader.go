package ingest

import (
	"openbook/internal/adapters/ingest/pgn"
	"openbook/internal/services/openings/domain"
)

// sourceFactory adapts pgn.Open to the domain.SourceFactory
type sourceFactory struct{}

// NewSourceFactory returns a factory that wraps pgn.Open
func NewSourceFactory() domain.SourceFactory { return sourceFactory{} }

func (sourceFactory) Open(path string, maxPly int) (domain.GameSource, error) {
	r, err := pgn.Open(path, maxPly)
	if err != nil {
		return nil, err
	}
	return r, nil
}
