package ingest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"openbook/internal/adapters/ingest/twic"
	"openbook/internal/modkit"
	"openbook/internal/platform/config"
	perr "openbook/internal/platform/errors"
	kit "openbook/internal/platform/testkit"
)

func TestNewClient_ReadsIngestConfig(t *testing.T) {
	t.Setenv("CORE_INGEST_USER_AGENT", "openbook-test/1")
	t.Setenv("CORE_INGEST_HTTP_TIMEOUT_SECONDS", "7")
	t.Setenv("CORE_INGEST_MAX_INDEX_BYTES", "1024")

	c := NewClient(modkit.Deps{Cfg: config.New()})
	if c.UserAgent != "openbook-test/1" {
		t.Fatalf("UA = %q", c.UserAgent)
	}
	if c.HTTP.Timeout != 7*time.Second {
		t.Fatalf("timeout = %v", c.HTTP.Timeout)
	}
	if c.MaxIndexBytes != 1024 {
		t.Fatalf("max index bytes = %d", c.MaxIndexBytes)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	hc := &http.Client{}
	c := NewClient(modkit.Deps{Cfg: config.New().Prefix("UNSET_"), HTTP: hc})
	if c.UserAgent != twic.DefaultUserAgent || c.MaxIndexBytes != twic.DefaultMaxIndexBytes {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.HTTP != hc {
		t.Fatalf("deps client should be reused")
	}
}

func TestShims_EndToEnd(t *testing.T) {
	zipBody := kit.ZipBytes(t, kit.ZipEntry{Name: "twic1500.pgn", Body: kit.SamplePGN})
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/twic":
			_, _ = w.Write([]byte(`<a href="` + srv.URL + `/zips/twic1500g.zip">pgn</a>`))
		case "/zips/twic1500g.zip":
			_, _ = w.Write(zipBody)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := twic.NewClient()
	loc, err := NewLocator(c, `http://127\.0\.0\.1:\d+/zips/twic\d+g\.zip`)
	if err != nil {
		t.Fatal(err)
	}
	ref, err := loc.Locate(context.Background(), srv.URL+"/twic")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}

	dir := t.TempDir()
	archive := filepath.Join(dir, "twic_latest.zip")
	if _, err := NewFetcher(c).Fetch(context.Background(), ref, archive); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	rec, err := NewUnpacker().Unpack(archive, dir, ".pgn")
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	src, err := NewSourceFactory().Open(rec, 10)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = src.Close() }()

	n := 0
	for {
		if _, err := src.Next(); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatalf("next: %v", err)
		}
		n++
	}
	if g, _ := src.Stats(); n != 3 || g != 3 {
		t.Fatalf("games = %d stats = %d", n, g)
	}
}

func TestNewLocator_BadPattern(t *testing.T) {
	if _, err := NewLocator(nil, "("); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v", err)
	}
}

func TestSourceFactory_MissingFile(t *testing.T) {
	_, err := NewSourceFactory().Open(filepath.Join(t.TempDir(), "none.pgn"), 10)
	if !perr.IsCode(err, perr.ErrorCodeExtraction) {
		t.Fatalf("err = %v", err)
	}
}
