package model

import "strings"

// SanitizeName makes a remote-controlled name safe to use as a single
// filesystem path component. Any byte outside [A-Za-z0-9._-] becomes "_",
// and leading dots are stripped so no ".." or hidden segment can survive.
// An empty result falls back to "artifact".
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.', c == '_', c == '-':
			b.WriteRune(c)
		default:
			b.WriteByte('_')
		}
	}

	s := strings.TrimLeft(b.String(), ".")
	if s == "" {
		return "artifact"
	}
	return s
}
