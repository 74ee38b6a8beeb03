package duplicates

import (
	"github.com/dupmap/dupmap/pkg/parser"
)

// Category placeholders for normalized tokens. All identifiers collapse to
// one canonical entry, likewise numeric and string literals; the categories
// stay distinct from each other.
const (
	placeholderIdent  = "$ID"
	placeholderNumber = "$NUM"
	placeholderString = "$STR"
)

// Normalize maps a token stream to its canonical comparable sequence,
// preserving order. Identifier and literal tokens become category
// placeholders, comments are dropped, everything else (keywords, operators,
// punctuation) is kept verbatim.
func Normalize(tokens []parser.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		switch t.Kind {
		case parser.TokenIdent:
			out = append(out, placeholderIdent)
		case parser.TokenNumber:
			out = append(out, placeholderNumber)
		case parser.TokenString:
			out = append(out, placeholderString)
		case parser.TokenComment:
			// structural noise, dropped
		default:
			out = append(out, t.Text)
		}
	}
	return out
}

// canonicalSet converts a canonical sequence to a set, discarding order and
// duplicate counts.
func canonicalSet(seq []string) map[string]struct{} {
	set := make(map[string]struct{}, len(seq))
	for _, s := range seq {
		set[s] = struct{}{}
	}
	return set
}
