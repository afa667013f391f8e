// Package book indexes an openings dataset by position so a player can pick
// a book reply. Lines are replayed from the initial position with notnil/chess;
// positions are keyed by the first four FEN fields so move counters never split
// otherwise identical positions
package book

import (
	"encoding/json"
	"io"
	"strings"

	perr "openbook/internal/platform/errors"

	"github.com/notnil/chess"
	"github.com/samber/lo"
	"lukechampine.com/frand"
)

// Book maps a position key to the distinct book moves seen there
type Book struct {
	moves   map[string][]string
	lines   int
	skipped int
}

// Load decodes a JSON array of UCI move lines and replays each one.
// A move that fails to decode or is illegal ends its line; the load continues
func Load(r io.Reader) (*Book, error) {
	var lines [][]string
	if err := json.NewDecoder(r).Decode(&lines); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeParse, "decode book")
	}
	b := &Book{moves: make(map[string][]string)}
	for _, line := range lines {
		b.add(line)
	}
	return b, nil
}

func (b *Book) add(line []string) {
	b.lines++
	g := newGame()
	for _, mv := range line {
		k := Key(g.Position().String())
		if err := g.MoveStr(mv); err != nil {
			b.skipped++
			return
		}
		if !lo.Contains(b.moves[k], mv) {
			b.moves[k] = append(b.moves[k], mv)
		}
	}
}

// Moves returns the book moves for fen in first-seen order, nil when out of book
func (b *Book) Moves(fen string) []string {
	ms := b.moves[Key(fen)]
	if len(ms) == 0 {
		return nil
	}
	return append([]string(nil), ms...)
}

// Pick returns a uniformly chosen book move for fen
func (b *Book) Pick(fen string) (string, bool) {
	ms := b.moves[Key(fen)]
	if len(ms) == 0 {
		return "", false
	}
	return ms[frand.Intn(len(ms))], true
}

// Len is the number of indexed positions
func (b *Book) Len() int { return len(b.moves) }

// Lines is the number of lines read from the dataset
func (b *Book) Lines() int { return b.lines }

// Skipped is the number of lines cut short by an undecodable or illegal move
func (b *Book) Skipped() int { return b.skipped }

// Key reduces a FEN to placement, side to move, castling and en passant
func Key(fen string) string {
	f := strings.Fields(fen)
	if len(f) > 4 {
		f = f[:4]
	}
	return strings.Join(f, " ")
}

// StartFEN is the FEN of the standard initial position
func StartFEN() string { return chess.StartingPosition().String() }

// Replay plays UCI moves from the initial position and returns the resulting FEN
func Replay(moves []string) (string, error) {
	g := newGame()
	for i, mv := range moves {
		if err := g.MoveStr(mv); err != nil {
			return "", perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "move %d %q", i+1, mv), "moves")
		}
	}
	return g.Position().String(), nil
}

func newGame() *chess.Game { return chess.NewGame(chess.UseNotation(chess.UCINotation{})) }
