package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"openbook/internal/core/book"
	"openbook/internal/core/version"
	perr "openbook/internal/platform/errors"
	"openbook/internal/platform/logger"
)

func main() {
	l := logger.Get()

	var (
		fBook  = flag.String("book", "openings.json", "openings dataset to load")
		fMoves = flag.String("moves", "", "space separated UCI moves from the start position")
		fPick  = flag.Bool("pick", false, "print one random book move instead of all of them")
	)
	flag.Parse()

	l.Debug().Object("build", version.Info("openbook-probe")).Msg("starting")

	f, err := os.Open(*fBook)
	if err != nil {
		l.Error().Err(err).Str("book", *fBook).Msg("open book")
		os.Exit(perr.ExitCode(perr.ErrorCodeNotFound))
	}
	b, err := book.Load(f)
	_ = f.Close()
	if err != nil {
		l.Error().Err(err).Str("book", *fBook).Msg("load book")
		os.Exit(perr.ExitCode(perr.CodeOf(err)))
	}
	l.Debug().
		Int("lines", b.Lines()).
		Int("skipped", b.Skipped()).
		Int("positions", b.Len()).
		Msg("book loaded")

	fen, err := book.Replay(strings.Fields(*fMoves))
	if err != nil {
		l.Error().Err(err).Msg("replay moves")
		os.Exit(perr.ExitCode(perr.CodeOf(err)))
	}

	if *fPick {
		mv, ok := b.Pick(fen)
		if !ok {
			l.Info().Str("fen", fen).Msg("out of book")
			os.Exit(1)
		}
		fmt.Println(mv)
		return
	}
	moves := b.Moves(fen)
	if len(moves) == 0 {
		l.Info().Str("fen", fen).Msg("out of book")
		os.Exit(1)
	}
	fmt.Println(strings.Join(moves, " "))
}
