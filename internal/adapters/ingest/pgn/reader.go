// Package pgn streams game records from a PGN file as UCI move lists
//
// Design choices:
// - Records are split on the blank line that ends movetext; blank lines inside
//   a {comment} do not end a record.
// - Movetext is tokenized here and only the first maxPly SAN moves are replayed
//   with notnil/chess. Moves past the cap are never looked at.
// - An unreadable or illegal move cuts that game short; the moves before it are
//   kept and the stream goes on with the next record.
// - Invalid UTF-8 bytes are dropped on the way in rather than failing the file.
// - Only a broken input stream (read error, oversized line) is a Parse error.
//   It is sticky and callers keep what they already read.
package pgn

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	perr "openbook/internal/platform/errors"
	"openbook/internal/platform/logger"

	"github.com/notnil/chess"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const maxLineSize = 1 << 20

// Reader yields one UCI move list per game record
type Reader struct {
	c       io.Closer
	sc      *bufio.Scanner
	maxPly  int
	carry   string
	games   int
	plies   int
	cut     int
	err     error
	sampled bool
}

// Open opens path for streaming; maxPly <= 0 keeps every move of a game
func Open(path string, maxPly int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeExtraction, "pgn: open %s", path)
	}
	return NewReader(f, maxPly), nil
}

// NewReader wraps rc; Close closes rc
func NewReader(rc io.ReadCloser, maxPly int) *Reader {
	clean := transform.NewReader(rc, runes.Remove(runes.Predicate(func(r rune) bool {
		return r == utf8.RuneError
	})))
	sc := bufio.NewScanner(clean)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Reader{c: rc, sc: sc, maxPly: maxPly}
}

// Next returns the moves of the next game; io.EOF when the input is exhausted.
// After a Parse error every further call returns the same error
func (rd *Reader) Next() ([]string, error) {
	if rd.err != nil {
		return nil, rd.err
	}
	rec, ok, err := rd.record()
	if err != nil {
		rd.err = perr.Wrapf(err, perr.ErrorCodeParse, "pgn: read after game %d", rd.games)
		return nil, rd.err
	}
	if !ok {
		rd.err = io.EOF
		return nil, io.EOF
	}
	moves := rd.decode(rec)
	rd.games++
	rd.plies += len(moves)

	if !rd.sampled {
		rd.sampled = true
		logger.Named("pgn").Debug().
			Strs("moves", moves).
			Int("record_bytes", len(rec)).
			Msg("pgn: sample game")
	}
	return moves, nil
}

// decode turns one record into at most maxPly UCI codes
func (rd *Reader) decode(rec string) []string {
	tags, text := splitRecord(rec)

	var opts []func(*chess.Game)
	if fen, ok := tags["FEN"]; ok {
		opt, err := chess.FEN(fen)
		if err != nil {
			rd.cut++
			logger.Named("pgn").Debug().Err(err).Int("game", rd.games+1).Str("fen", fen).Msg("pgn: bad FEN tag; game skipped")
			return []string{}
		}
		opts = append(opts, opt)
	}
	g := chess.NewGame(opts...)

	sans := sanTokens(text, rd.maxPly)
	out := make([]string, 0, len(sans))
	uci := chess.UCINotation{}
	for i, san := range sans {
		pos := g.Position()
		mv, err := decodeSAN(pos, san)
		if err == nil {
			err = g.Move(mv)
		}
		if err != nil {
			rd.cut++
			logger.Named("pgn").Debug().Err(err).
				Int("game", rd.games+1).
				Int("ply", i+1).
				Str("san", san).
				Msg("pgn: game cut at unreadable move")
			break
		}
		out = append(out, uci.Encode(pos, mv))
	}
	return out
}

// decodeSAN resolves san on pos. Check and mate marks are optional
func decodeSAN(pos *chess.Position, san string) (*chess.Move, error) {
	alg := chess.AlgebraicNotation{}
	mv, err := alg.Decode(pos, san)
	if err == nil {
		return mv, nil
	}
	want := strings.TrimRight(san, "+#")
	for _, cand := range pos.ValidMoves() {
		if strings.TrimRight(alg.Encode(pos, cand), "+#") == want {
			return cand, nil
		}
	}
	return nil, err
}

// splitRecord separates the leading tag pairs from the movetext
func splitRecord(rec string) (map[string]string, string) {
	tags := map[string]string{}
	rest := rec
	for rest != "" {
		line, tail, _ := strings.Cut(rest, "\n")
		if !strings.HasPrefix(line, "[") {
			break
		}
		inner := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
		if key, val, ok := strings.Cut(inner, " "); ok {
			tags[key] = strings.Trim(strings.TrimSpace(val), `"`)
		}
		rest = tail
	}
	return tags, rest
}

const tokenStop = " \t\r\n{};()"

// sanTokens returns up to limit mainline SAN moves from movetext; limit <= 0 means all.
// Comments, variations, NAGs and move numbers are skipped; a result token ends the game
func sanTokens(text string, limit int) []string {
	var out []string
	depth := 0
	for i := 0; i < len(text); {
		if limit > 0 && len(out) >= limit {
			break
		}
		switch c := text[i]; c {
		case '{':
			j := strings.IndexByte(text[i:], '}')
			if j < 0 {
				return out
			}
			i += j + 1
		case ';':
			j := strings.IndexByte(text[i:], '\n')
			if j < 0 {
				return out
			}
			i += j + 1
		case '(':
			depth++
			i++
		case ')':
			if depth > 0 {
				depth--
			}
			i++
		default:
			j := i
			for j < len(text) && !strings.ContainsRune(tokenStop, rune(text[j])) {
				j++
			}
			if j == i {
				// whitespace or a stray '}'
				i++
				continue
			}
			tok := text[i:j]
			i = j
			if depth > 0 {
				continue
			}
			san, end := sanOf(tok)
			if end {
				return out
			}
			if san != "" {
				out = append(out, san)
			}
		}
	}
	return out
}

// sanOf strips move numbers and annotation glyphs from tok.
// end reports a game termination marker
func sanOf(tok string) (san string, end bool) {
	switch tok {
	case "1-0", "0-1", "1/2-1/2", "*":
		return "", true
	}
	if tok[0] == '$' {
		return "", false
	}
	k := 0
	for k < len(tok) && tok[k] >= '0' && tok[k] <= '9' {
		k++
	}
	if k > 0 && !strings.HasPrefix(tok[k:], ".") && !strings.HasPrefix(tok, "0-0") {
		return "", false
	}
	if k > 0 && tok[k:k+1] == "." {
		tok = tok[k:]
	}
	tok = strings.TrimLeft(tok, ".")
	tok = strings.TrimRight(tok, "!?")
	if strings.HasPrefix(tok, "0-0") {
		tok = strings.ReplaceAll(tok, "0", "O")
	}
	return tok, false
}

// record collects the lines of the next game: tag pairs, then movetext up to a
// blank line or the next tag section. ok is false at end of input
func (rd *Reader) record() (rec string, ok bool, err error) {
	var sb strings.Builder
	inMoves, inComment := false, false
	if rd.carry != "" {
		sb.WriteString(rd.carry)
		sb.WriteByte('\n')
		rd.carry = ""
	}
	for rd.sc.Scan() {
		line := strings.TrimSpace(rd.sc.Text())
		if inComment {
			inComment = commentOpen(line, true)
			sb.WriteString(line)
			sb.WriteByte('\n')
			continue
		}
		switch {
		case line == "":
			if inMoves {
				return sb.String(), true, nil
			}
			continue
		case strings.HasPrefix(line, "%"):
			// escape line
			continue
		case strings.HasPrefix(line, "["):
			if inMoves {
				rd.carry = line
				return sb.String(), true, nil
			}
		default:
			inMoves = true
			inComment = commentOpen(line, false)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := rd.sc.Err(); err != nil {
		return "", false, err
	}
	if sb.Len() == 0 {
		return "", false, nil
	}
	return sb.String(), true, nil
}

// commentOpen reports whether a {comment} is still open at the end of line
func commentOpen(line string, open bool) bool {
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case open:
			open = c != '}'
		case c == '{':
			open = true
		case c == ';':
			return false
		}
	}
	return open
}

// Close closes the underlying file
func (rd *Reader) Close() error {
	if rd.c == nil {
		return nil
	}
	err := rd.c.Close()
	rd.c = nil
	return err
}

// Stats returns games decoded and plies emitted so far
func (rd *Reader) Stats() (games, plies int) { return rd.games, rd.plies }

// Cut returns how many games ended early on an unreadable move or FEN
func (rd *Reader) Cut() int { return rd.cut }
