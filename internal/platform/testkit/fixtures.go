package testkit

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

// SamplePGN holds three games of 12, 3 and 7 plies
const SamplePGN = `[Event "Fixture A"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "White A"]
[Black "Black A"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 4. Ba4 Nf6 5. O-O Be7 6. Re1 b5 1-0

[Event "Fixture B"]
[Site "?"]
[Date "2024.01.02"]
[Round "2"]
[White "White B"]
[Black "Black B"]
[Result "1/2-1/2"]

1. d4 d5 2. c4 1/2-1/2

[Event "Fixture C"]
[Site "?"]
[Date "2024.01.03"]
[Round "3"]
[White "White C"]
[Black "Black C"]
[Result "0-1"]

1. e4 c5 2. Nf3 d6 3. d4 cxd4 4. Nxd4 0-1
`

// SampleFirstTen is the UCI rendering of the first ten plies of fixture A
var SampleFirstTen = []string{
	"e2e4", "e7e5", "g1f3", "b8c6", "f1b5",
	"a7a6", "b5a4", "g8f6", "e1g1", "f8e7",
}

// ZipEntry is one member of a fixture archive
type ZipEntry struct {
	Name string
	Body string
}

// ZipBytes builds an in-memory zip archive with entries in the given order
func ZipBytes(t *testing.T, entries ...ZipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("zip create %s: %v", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Body)); err != nil {
			t.Fatalf("zip write %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// WriteFile writes body to dir/name, creating parents, and returns the full path
func WriteFile(t *testing.T, dir, name string, body []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, body, 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}
