package book

import (
	"slices"
	"strings"
	"testing"

	perr "openbook/internal/platform/errors"
)

const dataset = `[
  ["e2e4", "e7e5", "g1f3", "b8c6", "f1b5"],
  ["e2e4", "c7c5", "g1f3", "d7d6", "d2d4"],
  ["d2d4", "d7d5", "zz", "c2c4", "e7e6"],
  ["e2e4", "e2e4"]
]`

func mustLoad(t *testing.T, s string) *Book {
	t.Helper()
	b, err := Load(strings.NewReader(s))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func mustReplay(t *testing.T, moves ...string) string {
	t.Helper()
	fen, err := Replay(moves)
	if err != nil {
		t.Fatalf("replay %v: %v", moves, err)
	}
	return fen
}

func TestLoad_IndexesDistinctMovesInOrder(t *testing.T) {
	b := mustLoad(t, dataset)

	if got := b.Moves(StartFEN()); !slices.Equal(got, []string{"e2e4", "d2d4"}) {
		t.Fatalf("start moves = %v", got)
	}
	if got := b.Moves(mustReplay(t, "e2e4")); !slices.Equal(got, []string{"e7e5", "c7c5"}) {
		t.Fatalf("after e4 = %v", got)
	}
	if got := b.Moves(mustReplay(t, "e2e4", "e7e5", "g1f3", "b8c6")); !slices.Equal(got, []string{"f1b5"}) {
		t.Fatalf("after Nc6 = %v", got)
	}
	if got := b.Moves(mustReplay(t, "d2d4")); !slices.Equal(got, []string{"d7d5"}) {
		t.Fatalf("after d4 = %v", got)
	}
	if b.Lines() != 4 || b.Skipped() != 2 {
		t.Fatalf("lines=%d skipped=%d, want 4 and 2", b.Lines(), b.Skipped())
	}
	if b.Len() != 9 {
		t.Fatalf("positions = %d, want 9", b.Len())
	}
}

func TestLoad_BadMoveEndsLine(t *testing.T) {
	b := mustLoad(t, dataset)
	// the undecodable "zz" cut the third line, so nothing after d7d5 is booked
	if got := b.Moves(mustReplay(t, "d2d4", "d7d5")); got != nil {
		t.Fatalf("expected out of book, got %v", got)
	}
}

func TestMoves_ReturnsCopy(t *testing.T) {
	b := mustLoad(t, dataset)
	got := b.Moves(StartFEN())
	got[0] = "a2a3"
	if again := b.Moves(StartFEN()); again[0] != "e2e4" {
		t.Fatalf("caller mutated the book: %v", again)
	}
}

func TestPick(t *testing.T) {
	b := mustLoad(t, dataset)
	for range 20 {
		mv, ok := b.Pick(StartFEN())
		if !ok || (mv != "e2e4" && mv != "d2d4") {
			t.Fatalf("pick = %q %v", mv, ok)
		}
	}
	if _, ok := b.Pick(mustReplay(t, "a2a3")); ok {
		t.Fatalf("pick out of book should be false")
	}
}

func TestKey_IgnoresMoveCounters(t *testing.T) {
	a := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	b := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 7 40"
	if Key(a) != Key(b) {
		t.Fatalf("keys differ: %q vs %q", Key(a), Key(b))
	}
	if Key("  short fen ") != "short fen" {
		t.Fatalf("short key = %q", Key("  short fen "))
	}
}

func TestLoad_EmptyAndInvalid(t *testing.T) {
	b := mustLoad(t, "[]")
	if b.Len() != 0 || b.Lines() != 0 {
		t.Fatalf("empty book has content")
	}
	if _, err := Load(strings.NewReader(`{"not":"a list"}`)); !perr.IsCode(err, perr.ErrorCodeParse) {
		t.Fatalf("want parse error, got %v", err)
	}
}

func TestReplay_IllegalMove(t *testing.T) {
	_, err := Replay([]string{"e2e4", "e2e4"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "moves" {
		t.Fatalf("field = %q", e.Field())
	}
	if fen := mustReplay(t); fen != StartFEN() {
		t.Fatalf("empty replay = %q", fen)
	}
}
