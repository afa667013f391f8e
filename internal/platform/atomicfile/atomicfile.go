// Package atomicfile writes files through a sibling temp file and a rename,
// so readers see either the old content or the complete new content
package atomicfile

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// chunk is the copy buffer size used by Copy
const chunk = 32 << 10

// Write creates a temp file next to path, hands a buffered writer to fn,
// then syncs and renames it over path. On any error the temp file is removed
// and path is left untouched
func Write(path string, fn func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.part")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(name)
		}
	}()

	bw := bufio.NewWriterSize(tmp, chunk)
	if err = fn(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(name, 0o644); err != nil {
		return err
	}
	return os.Rename(name, path)
}

// Copy streams r into path in fixed-size chunks through Write and returns the bytes written
func Copy(path string, r io.Reader) (int64, error) {
	var n int64
	err := Write(path, func(w io.Writer) error {
		buf := make([]byte, chunk)
		var cerr error
		n, cerr = io.CopyBuffer(w, r, buf)
		return cerr
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
