package testkit

import (
	"sync"
	"testing"
)

var seamMu sync.Mutex

// Swap replaces *target for the rest of the test and returns the previous value,
// so a replacement can delegate to it. The previous value is restored on cleanup
func Swap[T any](t *testing.T, target *T, replacement T) T {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
	return orig
}

// Serial holds a process-wide lock until the test ends.
// Tests that Swap package-level seams call it so parallel tests never observe the swap
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
