// Package ingest holds adapter shims for the openings ingest ports
package ingest

import (
	"context"
	"time"

	"openbook/internal/adapters/ingest/twic"
	"openbook/internal/modkit"
	"openbook/internal/services/openings/domain"
)

// NewClient builds the shared TWIC client from config under CORE_INGEST_*.
// This keeps config-reading outside service
func NewClient(deps modkit.Deps) *twic.Client {
	ing := deps.Cfg.Prefix("CORE_INGEST_")

	httpTO := time.Duration(ing.MayInt("HTTP_TIMEOUT_SECONDS", 0)) * time.Second // 0 == no client timeout

	opts := []twic.Option{
		twic.WithTimeout(httpTO),
		twic.WithUserAgent(ing.MayString("USER_AGENT", twic.DefaultUserAgent)),
		twic.WithMaxIndexBytes(ing.MayInt64("MAX_INDEX_BYTES", twic.DefaultMaxIndexBytes)),
	}
	if deps.HTTP != nil {
		opts = append(opts, twic.WithHTTPClient(deps.HTTP))
	}
	return twic.NewClient(opts...)
}

// locator implements domain.Locator on twic.Locator
type locator struct{ l *twic.Locator }

// NewLocator constructs a domain.Locator matching pattern
func NewLocator(c *twic.Client, pattern string) (domain.Locator, error) {
	l, err := twic.NewLocator(c, pattern)
	if err != nil {
		return nil, err
	}
	return &locator{l: l}, nil
}

func (l *locator) Locate(ctx context.Context, indexURL string) (domain.ArchiveRef, error) {
	ref, err := l.l.Locate(ctx, indexURL)
	return domain.ArchiveRef(ref), err
}

// fetcher implements domain.Fetcher on twic.Downloader
type fetcher struct{ d *twic.Downloader }

// NewFetcher constructs a domain.Fetcher sharing c
func NewFetcher(c *twic.Client) domain.Fetcher { return &fetcher{d: twic.NewDownloader(c)} }

func (f *fetcher) Fetch(ctx context.Context, ref domain.ArchiveRef, dst string) (int64, error) {
	return f.d.Download(ctx, string(ref), dst)
}

type unpacker struct{}

// NewUnpacker constructs a domain.Unpacker on twic.Unpack
func NewUnpacker() domain.Unpacker { return unpacker{} }

func (unpacker) Unpack(archivePath, workDir, ext string) (string, error) {
	return twic.Unpack(archivePath, workDir, ext)
}
