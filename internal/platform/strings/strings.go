// Package strings holds the slice and path helpers shared by the http packages
package strings

import std "strings"

// IfEmpty falls back to def for a nil or empty slice
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix turns " api/v1/ " into "/api/v1"; a prefix that trims to nothing panics
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("strings: empty mount prefix")
	}
	return s
}
