package module

import (
	"regexp"
	"time"

	"openbook/internal/adapters/ingest/twic"
	"openbook/internal/core/opening"
	"openbook/internal/platform/config"
	perr "openbook/internal/platform/errors"
	"openbook/internal/platform/validate"
)

// Options holds configuration options for the openings pipeline.
// env tags name the variable under CORE_OPENINGS_ and appear in validation messages
type Options struct {
	IndexURL       string `env:"INDEX_URL" validate:"required,url"`
	ArchivePattern string `env:"ARCHIVE_PATTERN" validate:"required"`
	ArchivePath    string `env:"ARCHIVE_PATH" validate:"required"`
	WorkDir        string `env:"WORK_DIR" validate:"required"`
	RecordExt      string `env:"RECORD_EXT" validate:"required,file_ext"`
	OutputPath     string `env:"OUTPUT_PATH" validate:"required"`

	ExtractMoves int   `env:"EXTRACT_MOVES" validate:"min=1"`
	MaxGames     int   `env:"MAX_GAMES" validate:"min=1"`
	MinMoves     int   `env:"MIN_MOVES" validate:"min=0,ltfield=ExtractMoves"`
	Seed         int64 `env:"SEED"`

	RunTimeout   time.Duration `env:"RUN_TIMEOUT" validate:"gte=0"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" validate:"gte=0"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" validate:"gte=0"`
}

// FromConfig reads the openings options from config with CORE_OPENINGS_ prefix
func FromConfig(cfg config.Conf) Options {
	op := cfg.Prefix("CORE_OPENINGS_")
	return Options{
		IndexURL:       op.MayString("INDEX_URL", twic.DefaultIndexURL),
		ArchivePattern: op.MayString("ARCHIVE_PATTERN", twic.DefaultArchivePattern),
		ArchivePath:    op.MayString("ARCHIVE_PATH", "twic_latest.zip"),
		WorkDir:        op.MayString("WORK_DIR", "."),
		RecordExt:      op.MayString("RECORD_EXT", twic.DefaultRecordExt),
		OutputPath:     op.MayString("OUTPUT_PATH", "openings.json"),
		ExtractMoves:   op.MayInt("EXTRACT_MOVES", opening.DefaultExtractMoves),
		MaxGames:       op.MayInt("MAX_GAMES", 20000),
		MinMoves:       op.MayInt("MIN_MOVES", opening.DefaultMinMoves),
		Seed:           op.MayInt64("SEED", 0),
		RunTimeout:     op.MayDuration("RUN_TIMEOUT", 0),
		FetchTimeout:   op.MayDuration("FETCH_TIMEOUT", 0),
		ReadTimeout:    op.MayDuration("READ_TIMEOUT", 0),
	}
}

// Validate checks the options before any network or disk work
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return perr.WithOp(err, "openings.options")
	}
	if _, err := regexp.Compile(o.ArchivePattern); err != nil {
		return perr.WithOp(perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "ARCHIVE_PATTERN must be a valid regexp"), "ARCHIVE_PATTERN"), "openings.options")
	}
	return nil
}
