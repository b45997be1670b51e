// Package config reads service settings from the environment. Optional values fall
// back to their default with a warning when malformed; required or enumerated values
// panic at startup instead.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"contactguard/internal/platform/logger"
)

// Conf is a view over the environment scoped by a key prefix such as "CONTACT_"
type Conf struct{ prefix string }

func New() Conf { return Conf{} }

// Prefix nests: New().Prefix("CORE_").Prefix("API_") reads CORE_API_*
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) name(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.name(k))) }

func (c Conf) fail(k, value, msg string) {
	logger.Get().Panic().Str("key", c.name(k)).Str("value", value).Msg(msg)
}

// may parses key with parse, logging and returning def when the value is unusable
func may[T any](c Conf, key string, def T, parse func(string) (T, bool)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, ok := parse(s); ok {
		return v
	}
	logger.Get().Warn().
		Str("key", c.name(key)).
		Str("value", s).
		Str("default", fmt.Sprint(def)).
		Msg("invalid config value, using default")
	return def
}

func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		c.fail(key, v, "missing required env")
	}
	return v
}

func (c Conf) MayString(key, def string) string {
	return may(c, key, def, func(s string) (string, bool) { return s, true })
}

func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil
	})
}

func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, func(s string) (bool, bool) {
		b, err := strconv.ParseBool(s)
		return b, err == nil
	})
}

func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, func(s string) (time.Duration, bool) {
		d, err := time.ParseDuration(s)
		return d, err == nil
	})
}

// MayCSV splits on commas and drops blank items; a list of only blanks is def
func (c Conf) MayCSV(key string, def []string) []string {
	return may(c, key, def, func(s string) ([]string, bool) {
		var out []string
		for p := range strings.SplitSeq(s, ",") {
			if v := strings.TrimSpace(p); v != "" {
				out = append(out, v)
			}
		}
		return out, len(out) > 0
	})
}

// MayEnum matches case-insensitively and returns the lowercased allowed value.
// Anything outside allowed panics.
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	c.fail(key, v, "invalid enum value, want one of "+strings.Join(allowed, "|"))
	return ""
}

// MayAddr accepts "host:port", ":port" or a bare port and returns "host:port".
// A port outside 1..65535 panics.
func (c Conf) MayAddr(key, def string) string {
	s := c.MayString(key, def)
	host, port := "", s
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		host, port = s[:i], s[i+1:]
	}
	if p, err := strconv.Atoi(port); err != nil || p < 1 || p > 65535 {
		c.fail(key, s, "invalid listen address, want [host]:1..65535")
	}
	return host + ":" + port
}

// byteUnits is ordered so longer suffixes match first
var byteUnits = []struct {
	suffix string
	mult   int64
}{
	{"KIB", 1 << 10},
	{"MIB", 1 << 20},
	{"KB", 1000},
	{"MB", 1000 * 1000},
	{"B", 1},
}

// MayBytes reads a positive size such as "65536", "64KiB" or "1MB"
func (c Conf) MayBytes(key string, def int64) int64 {
	return may(c, key, def, func(s string) (int64, bool) {
		num, mult := strings.ToUpper(s), int64(1)
		for _, u := range byteUnits {
			if rest, ok := strings.CutSuffix(num, u.suffix); ok {
				num, mult = strings.TrimSpace(rest), u.mult
				break
			}
		}
		n, err := strconv.ParseInt(num, 10, 64)
		return n * mult, err == nil && n > 0
	})
}
