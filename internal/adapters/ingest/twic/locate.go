package twic

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"regexp"

	perr "openbook/internal/platform/errors"
	"openbook/internal/platform/logger"

	"github.com/PuerkitoBio/goquery"
)

// Locator finds the current archive URL on the index page
type Locator struct {
	c       *Client
	pattern *regexp.Regexp
	whole   *regexp.Regexp
}

// NewLocator compiles pattern; an empty pattern uses DefaultArchivePattern
func NewLocator(c *Client, pattern string) (*Locator, error) {
	if c == nil {
		c = NewClient()
	}
	if pattern == "" {
		pattern = DefaultArchivePattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "twic: bad archive pattern"), "ARCHIVE_PATTERN")
	}
	return &Locator{c: c, pattern: re, whole: regexp.MustCompile(`^(?:` + pattern + `)$`)}, nil
}

// Locate fetches indexURL and returns the first archive link it carries
func (l *Locator) Locate(ctx context.Context, indexURL string) (string, error) {
	resp, err := l.c.get(ctx, indexURL)
	if err != nil {
		return "", err
	}
	body, rerr := io.ReadAll(io.LimitReader(resp.Body, l.c.MaxIndexBytes))
	if cerr := resp.Body.Close(); cerr != nil && rerr == nil {
		rerr = cerr
	}
	if rerr != nil {
		return "", perr.Wrapf(rerr, perr.ErrorCodeFetch, "twic: read index %s", indexURL)
	}

	ref, how, ok := l.find(body, indexURL)
	if !ok {
		return "", perr.Discoveryf("twic: no archive link matching %q on %s", l.pattern.String(), indexURL)
	}
	logger.Named("twic").Debug().
		Str("index", indexURL).
		Str("archive", ref).
		Str("via", how).
		Int("index_bytes", len(body)).
		Msg("twic: archive located")
	return ref, nil
}

// find scans raw text first, then falls back to anchors resolved against base
func (l *Locator) find(body []byte, base string) (ref, how string, ok bool) {
	if m := l.pattern.Find(body); m != nil {
		return string(m), "text", true
	}
	if ref, ok := l.fromAnchors(body, base); ok {
		return ref, "anchor", true
	}
	return "", "", false
}

func (l *Locator) fromAnchors(body []byte, base string) (string, bool) {
	bu, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		u, err := bu.Parse(href)
		if err != nil {
			return true
		}
		if abs := u.String(); l.whole.MatchString(abs) {
			found = abs
			return false
		}
		return true
	})
	return found, found != ""
}
