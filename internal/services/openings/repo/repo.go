// Package repo persists the openings dataset as an indented JSON file
package repo

import (
	"encoding/json"
	"io"

	"openbook/internal/platform/atomicfile"
	perr "openbook/internal/platform/errors"
	"openbook/internal/services/openings/domain"
)

// JSONDataset writes a JSON array of move arrays
type JSONDataset struct {
	Indent string
}

// NewJSON returns a writer with two-space indentation
func NewJSON() domain.DatasetWriter { return JSONDataset{Indent: "  "} }

// Write encodes openings to path through a temp file and rename.
// A nil collection is written as []; on failure path is left untouched
func (d JSONDataset) Write(path string, openings []domain.MoveList) error {
	if openings == nil {
		openings = []domain.MoveList{}
	}
	err := atomicfile.Write(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", d.Indent)
		return enc.Encode(openings)
	})
	if err != nil {
		return perr.WithOp(perr.Wrapf(err, perr.ErrorCodeWrite, "openings: write %s", path), "write")
	}
	return nil
}
