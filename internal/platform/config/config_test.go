package config

import (
	"testing"
	"time"

	kit "openbook/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	core := New().Prefix("CORE_")
	if got := core.Key("X"); got != "CORE_X" {
		t.Fatalf("Key() = %q, want %q", got, "CORE_X")
	}
	op := core.Prefix("OPENINGS_")
	if got := op.Key("MAX_GAMES"); got != "CORE_OPENINGS_MAX_GAMES" {
		t.Fatalf("nested Key() = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  openbook ")
	if got := c.MustString("NAME"); got != "openbook" {
		t.Fatalf("MustString = %q, want %q", got, "openbook")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })

	t.Setenv("APP_WS", "   ")
	kit.MustPanic(t, func() { _ = c.MustString("WS") })
}

func TestMayString(t *testing.T) {
	c := New().Prefix("S_")
	if got := c.MayString("MISSING", "openings.json"); got != "openings.json" {
		t.Fatalf("MayString default = %q", got)
	}
	t.Setenv("S_OUT", " book.json ")
	if got := c.MayString("OUT", "x"); got != "book.json" {
		t.Fatalf("MayString value = %q", got)
	}
}

func TestMayInt(t *testing.T) {
	c := New().Prefix("I_")
	if got := c.MayInt("MISSING", 10); got != 10 {
		t.Fatalf("MayInt default = %d", got)
	}
	t.Setenv("I_OK", " 20000 ")
	if got := c.MayInt("OK", 0); got != 20000 {
		t.Fatalf("MayInt ok = %d", got)
	}
	t.Setenv("I_BAD", "ten")
	if got := c.MayInt("BAD", 3); got != 3 {
		t.Fatalf("MayInt bad -> default = %d", got)
	}
}

func TestMayInt64(t *testing.T) {
	c := New().Prefix("I64_")
	t.Setenv("I64_SEED", "-9000000000")
	if got := c.MayInt64("SEED", 0); got != -9000000000 {
		t.Fatalf("MayInt64 = %d", got)
	}
	t.Setenv("I64_BAD", "1.5")
	if got := c.MayInt64("BAD", 4); got != 4 {
		t.Fatalf("MayInt64 bad -> default = %d", got)
	}
}

func TestMayBool(t *testing.T) {
	c := New().Prefix("B_")
	if !c.MayBool("MISSING", true) {
		t.Fatalf("MayBool default true expected")
	}
	t.Setenv("B_T", "true")
	if !c.MayBool("T", false) {
		t.Fatalf("MayBool true expected")
	}
	t.Setenv("B_BAD", "nope")
	if c.MayBool("BAD", false) {
		t.Fatalf("MayBool bad -> default false expected")
	}
}

func TestMayDuration(t *testing.T) {
	c := New().Prefix("DUR_")
	if got := c.MayDuration("MISS", 5*time.Second); got != 5*time.Second {
		t.Fatalf("MayDuration default = %v", got)
	}
	t.Setenv("DUR_OK", "150ms")
	if got := c.MayDuration("OK", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration ok = %v", got)
	}
	t.Setenv("DUR_SECS", "30")
	if got := c.MayDuration("SECS", 0); got != 30*time.Second {
		t.Fatalf("MayDuration bare int = %v, want 30s", got)
	}
	t.Setenv("DUR_ZERO", "0")
	if got := c.MayDuration("ZERO", time.Minute); got != 0 {
		t.Fatalf("MayDuration zero = %v, want 0", got)
	}
	t.Setenv("DUR_BAD", "soon")
	if got := c.MayDuration("BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad -> default = %v", got)
	}
}
