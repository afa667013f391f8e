package twic

import (
	"context"
	"io"
	"net/http"
	"time"

	perr "openbook/internal/platform/errors"
)

const (
	// DefaultUserAgent mimics a desktop browser; the archive host rejects bare clients
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	// DefaultIndexURL is the page that links the current archive
	DefaultIndexURL = "https://theweekinchess.com/twic"

	// DefaultArchivePattern matches the PGN archive link on the index page
	DefaultArchivePattern = `https://theweekinchess\.com/zips/twic\d+g\.zip`

	// DefaultMaxIndexBytes caps how much of the index page is read
	DefaultMaxIndexBytes int64 = 8 << 20
)

// Client issues the GETs shared by the locator and the downloader
type Client struct {
	HTTP          *http.Client
	UserAgent     string
	MaxIndexBytes int64
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient reuses an existing http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTP = hc
		}
	}
}

// WithTimeout sets the http.Client timeout; zero means none
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTP = &http.Client{Timeout: d} }
}

// WithUserAgent overrides the request User-Agent
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.UserAgent = ua
		}
	}
}

// WithMaxIndexBytes overrides the index body cap; <=0 keeps the default
func WithMaxIndexBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.MaxIndexBytes = n
		}
	}
}

// NewClient builds a Client with browser-like defaults
func NewClient(opts ...Option) *Client {
	c := &Client{
		HTTP:          &http.Client{},
		UserAgent:     DefaultUserAgent,
		MaxIndexBytes: DefaultMaxIndexBytes,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// get performs a GET and returns the response only for 2xx statuses.
// Transport failures and other statuses map to Fetch errors
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "twic: build request for %s", url)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "twic: get %s", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		if cerr := resp.Body.Close(); cerr != nil {
			return nil, perr.Wrapf(cerr, perr.ErrorCodeFetch, "twic: unexpected status %d for %s", resp.StatusCode, url)
		}
		return nil, perr.Fetchf("twic: unexpected status %d for %s", resp.StatusCode, url)
	}
	return resp, nil
}
