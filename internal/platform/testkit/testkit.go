// Package testkit provides testing helpers
package testkit

import (
	"strings"
	"testing"
)

// maxShown bounds how much of a haystack a failed MustContain prints
const maxShown = 4 << 10

// MustPanic asserts that fn panics and returns the recovered value
func MustPanic(t *testing.T, fn func()) (r any) {
	t.Helper()
	func() {
		defer func() { r = recover() }()
		fn()
	}()
	if r == nil {
		t.Fatalf("expected panic, got none")
	}
	return r
}

// MustNotPanic asserts that fn returns normally
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle; the tail of a long haystack is elided
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	shown := haystack
	if len(shown) > maxShown {
		shown = shown[:maxShown] + "\n... (elided)"
	}
	t.Fatalf("expected output to contain %q\n\ngot:\n%s", needle, shown)
}
