// Package headers parses HTTP response metadata headers: the Content-Type
// header (RFC 7231, section 3.1.1.1) and the Link header (RFC 8288). Both
// parsers are pure functions over header strings and are safe for concurrent
// use.
package headers

import (
	"errors"
	"fmt"
)

// ErrMalformedHeader is returned when a header value violates its grammar.
// An absent or empty header is not an error for either parser.
var ErrMalformedHeader = errors.New("malformed header")

func errorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedHeader}, args...)...)
}

// splitTopLevel splits s at every occurrence of sep that is not inside a
// double-quoted string. With brackets set, separators inside <...> are
// also ignored, as required for splitting Link header values on commas.
// Unterminated quoted strings are caught later, when the individual
// parameter values are unquoted.
func splitTopLevel(s string, sep byte, brackets bool) []string {
	var parts []string
	start := 0
	inQuotes := false
	inBrackets := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inQuotes:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inQuotes = false
			}
		case c == '"':
			inQuotes = true
		case brackets && c == '<':
			inBrackets = true
		case brackets && c == '>':
			inBrackets = false
		case c == sep && !inBrackets:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// unquote strips surrounding double quotes from a parameter value and
// resolves backslash escapes per the quoted-string grammar. Values without
// a leading quote are returned unchanged.
func unquote(s string) (string, error) {
	if len(s) == 0 || s[0] != '"' {
		return s, nil
	}
	var b []byte
	escaped := false
	for i := 1; i < len(s); i++ {
		c := s[i]
		if escaped {
			b = append(b, c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			if i != len(s)-1 {
				return "", errorf("unexpected content after quoted string %q", s)
			}
			return string(b), nil
		default:
			b = append(b, c)
		}
	}
	return "", errorf("unterminated quoted string %q", s)
}
