// Package history implements the line-oriented refactoring-history index
// format and the on-disk history store.
//
// An index file holds one entry per refactoring:
//
//	<timestamp> '\t' <escaped description> '\n'
//
// with the time stamp in decimal UTC milliseconds and no header, footer or
// entry count. Descriptions are escaped so that delimiter characters inside
// human-authored text cannot break entry framing.
package history

import (
	"strings"

	"github.com/pkg/errors"
)

// Index format delimiters.
const (
	DelimComponent = '\t'
	DelimEntry     = '\n'
)

const escapeChar = '\\'

// Escape makes a description safe for embedding in an index entry. The
// escape character and the delimiter characters (plus carriage return, so
// that entries survive CRLF-translating transports) are replaced by
// backslash sequences. Escape and Unescape form a round-tripping pair.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\\\t\n\r") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case escapeChar:
			b.WriteString(`\\`)
		case DelimComponent:
			b.WriteString(`\t`)
		case DelimEntry:
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Unescape reverses Escape. A dangling or unknown escape sequence is a
// format error.
func Unescape(s string) (string, error) {
	if !strings.ContainsRune(s, escapeChar) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if !escaped {
			if r == escapeChar {
				escaped = true
			} else {
				b.WriteRune(r)
			}
			continue
		}
		switch r {
		case escapeChar:
			b.WriteRune(escapeChar)
		case 't':
			b.WriteRune(DelimComponent)
		case 'n':
			b.WriteRune(DelimEntry)
		case 'r':
			b.WriteRune('\r')
		default:
			return "", errors.Errorf("invalid escape sequence %q in index entry", string(escapeChar)+string(r))
		}
		escaped = false
	}
	if escaped {
		return "", errors.New("dangling escape character at end of index entry")
	}
	return b.String(), nil
}
