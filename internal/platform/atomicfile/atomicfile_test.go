package atomicfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrite_CreatesAndOverwrites(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "out.json")

	if err := Write(p, func(w io.Writer) error {
		_, err := io.WriteString(w, "first")
		return err
	}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := Write(p, func(w io.Writer) error {
		_, err := io.WriteString(w, "second")
		return err
	}); err != nil {
		t.Fatalf("second write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "second" {
		t.Fatalf("content = %q, %v", b, err)
	}
	assertNoParts(t, filepath.Dir(p))
}

func TestWrite_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.json")
	if err := os.WriteFile(p, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	err := Write(p, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "keep" {
		t.Fatalf("previous content clobbered: %q", b)
	}
	assertNoParts(t, dir)
}

func TestCopy_CountsBytes(t *testing.T) {
	p := filepath.Join(t.TempDir(), "blob.bin")
	src := strings.Repeat("x", 3*chunk+7)
	n, err := Copy(p, strings.NewReader(src))
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if n != int64(len(src)) {
		t.Fatalf("n = %d, want %d", n, len(src))
	}
	fi, err := os.Stat(p)
	if err != nil || fi.Size() != n {
		t.Fatalf("stat: %v size=%d", err, fi.Size())
	}
}

type failReader struct{ n int }

func (f *failReader) Read(p []byte) (int, error) {
	if f.n == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	f.n--
	return copy(p, "abc"), nil
}

func TestCopy_ReadErrorLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "blob.bin")
	if _, err := Copy(p, &failReader{n: 2}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err = %v", err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("target should not exist, stat err = %v", err)
	}
	assertNoParts(t, dir)
}

func assertNoParts(t *testing.T, dir string) {
	t.Helper()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range ents {
		if strings.HasSuffix(e.Name(), ".part") {
			t.Fatalf("leftover temp file %s", e.Name())
		}
	}
}
