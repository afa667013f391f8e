package twic

import (
	"context"
	"time"

	"openbook/internal/platform/atomicfile"
	perr "openbook/internal/platform/errors"
	"openbook/internal/platform/logger"
)

// Downloader streams an archive to a fixed local path
type Downloader struct {
	c *Client
}

// NewDownloader builds a Downloader on c (a default Client when nil)
func NewDownloader(c *Client) *Downloader {
	if c == nil {
		c = NewClient()
	}
	return &Downloader{c: c}
}

// Download GETs url and writes the body to dst in fixed-size chunks.
// dst is replaced only when the whole body arrived; returns bytes written
func (d *Downloader) Download(ctx context.Context, url, dst string) (int64, error) {
	start := time.Now()
	resp, err := d.c.get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Named("twic").Warn().Err(cerr).Msg("twic: close archive body")
		}
	}()

	n, err := atomicfile.Copy(dst, resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return 0, perr.Wrapf(ctx.Err(), perr.ErrorCodeFetch, "twic: download %s", url)
		}
		return 0, perr.Wrapf(err, perr.ErrorCodeFetch, "twic: download %s to %s", url, dst)
	}
	logger.Named("twic").Debug().
		Str("url", url).
		Str("dst", dst).
		Int64("bytes", n).
		Dur("took", time.Since(start)).
		Msg("twic: archive downloaded")
	return n, nil
}
