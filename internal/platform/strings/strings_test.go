package strings

import (
	"testing"

	kit "contactguard/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET", "POST"}
	if got := IfEmpty(nil, def); len(got) != 2 {
		t.Fatalf("nil should yield default, got %v", got)
	}
	if got := IfEmpty([]string{}, def); len(got) != 2 {
		t.Fatalf("empty should yield default, got %v", got)
	}
	if got := IfEmpty([]string{"OPTIONS"}, def); len(got) != 1 || got[0] != "OPTIONS" {
		t.Fatalf("non-empty should pass through, got %v", got)
	}
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"api/v1":    "/api/v1",
		"/api/v1/":  "/api/v1",
		"  /meta  ": "/meta",
		"//docs//":  "/docs",
		"/contact":  "/contact",
		" / api / ": "/api",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { _ = MustPrefix("  /  ") })
	kit.MustPanic(t, func() { _ = MustPrefix("") })
}
