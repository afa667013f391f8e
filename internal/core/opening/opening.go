// Package opening turns per-game move lists into opening lines
// Pipeline order
// 1 truncate each game to the first N plies
// 2 keep lines strictly longer than the minimum
// 3 shuffle the kept lines once before output
package opening

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/samber/lo"
	"lukechampine.com/frand"
)

// Defaults used when callers pass zero values through config
const (
	DefaultExtractMoves = 10
	DefaultMinMoves     = 4
)

// Line is an ordered list of UCI move codes, e.g. ["e2e4", "e7e5"]
type Line = []string

// Truncate returns the first n moves of line. The result shares backing
// storage with line; n <= 0 returns line unchanged
func Truncate(line Line, n int) Line {
	if n <= 0 || len(line) <= n {
		return line
	}
	return line[:n:n]
}

// Keep reports whether a truncated line is long enough to be an opening
func Keep(line Line, minMoves int) bool { return len(line) > minMoves }

// Extract truncates every game to extractMoves plies and keeps those strictly
// longer than minMoves. Order is preserved and duplicates are kept
func Extract(games []Line, extractMoves, minMoves int) (kept []Line, dropped int) {
	kept = lo.FilterMap(games, func(g Line, _ int) (Line, bool) {
		t := Truncate(g, extractMoves)
		return t, Keep(t, minMoves)
	})
	return kept, len(games) - len(kept)
}

// Shuffler permutes n elements through swap, matching rand.Shuffle
type Shuffler func(n int, swap func(i, j int))

// NewShuffler returns a uniform shuffler. Seed 0 draws from the frand global
// generator; any other seed yields a reproducible ChaCha stream
func NewShuffler(seed int64) Shuffler {
	if seed == 0 {
		return frand.Shuffle
	}
	return frand.NewCustom(seedKey(seed), 1024, 12).Shuffle
}

// seedKey stretches a 64-bit seed into the 32-byte key frand expects
func seedKey(seed int64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(seed))
	k := sha256.Sum256(b[:])
	return k[:]
}

// Shuffle permutes lines in place with s (frand when nil) and returns them
func Shuffle(lines []Line, s Shuffler) []Line {
	if s == nil {
		s = frand.Shuffle
	}
	s(len(lines), func(i, j int) { lines[i], lines[j] = lines[j], lines[i] })
	return lines
}
