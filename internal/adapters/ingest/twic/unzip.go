package twic

import (
	"io"
	"path/filepath"
	"strings"

	"openbook/internal/platform/atomicfile"
	perr "openbook/internal/platform/errors"
	"openbook/internal/platform/logger"

	"github.com/klauspost/compress/zip"
)

// DefaultRecordExt is the suffix of the game record file inside the archive
const DefaultRecordExt = ".pgn"

// Unpack extracts the first entry of archivePath whose name ends in ext
// (case-insensitive) into workDir and returns its path. Later matches are ignored
func Unpack(archivePath, workDir, ext string) (string, error) {
	if ext == "" {
		ext = DefaultRecordExt
	}
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeExtraction, "twic: open archive %s", archivePath)
	}
	defer func() {
		if cerr := zr.Close(); cerr != nil {
			logger.Named("twic").Warn().Err(cerr).Msg("twic: close archive")
		}
	}()

	want := strings.ToLower(ext)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(f.Name), want) {
			continue
		}
		name := filepath.FromSlash(f.Name)
		if !filepath.IsLocal(name) {
			return "", perr.Extractionf("twic: entry %q escapes %s", f.Name, workDir)
		}
		dst := filepath.Join(workDir, name)
		if err := extract(f, dst); err != nil {
			return "", err
		}
		logger.Named("twic").Debug().
			Str("entry", f.Name).
			Str("dst", dst).
			Uint64("bytes", f.UncompressedSize64).
			Msg("twic: record file extracted")
		return dst, nil
	}
	return "", perr.Extractionf("twic: no %s entry in %s", ext, archivePath)
}

func extract(f *zip.File, dst string) error {
	rc, err := f.Open()
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeExtraction, "twic: open entry %s", f.Name)
	}
	defer func() { _ = rc.Close() }()

	if err := atomicfile.Write(dst, func(w io.Writer) error {
		_, err := io.Copy(w, rc)
		return err
	}); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeExtraction, "twic: extract %s", f.Name)
	}
	return nil
}
