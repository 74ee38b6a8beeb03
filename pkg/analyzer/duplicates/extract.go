package duplicates

import (
	"encoding/hex"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/dupmap/dupmap/pkg/parser"
	"github.com/zeebo/blake3"
)

// ExtractFile parses one source file and returns a Method record for every
// function or method definition in it, at any nesting depth. Definitions
// whose name starts with an underscore are skipped, except __init__ which
// is always included. Unnamed definitions (anonymous function expressions)
// are skipped as well.
func (a *Analyzer) ExtractFile(path string) ([]*Method, error) {
	result, err := a.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}

	fileTokens := parser.GetTokens(result)
	lines := strings.Split(string(result.Source), "\n")

	var methods []*Method
	for _, fn := range parser.GetFunctions(result) {
		if skipName(fn.Name) {
			continue
		}

		tokens := parser.TokensInRange(fileTokens, fn.StartLine, fn.EndLine)
		canonical := Normalize(tokens)

		methods = append(methods, &Method{
			Name:           fn.Name,
			File:           path,
			StartLine:      fn.StartLine,
			EndLine:        fn.EndLine,
			SourceText:     sliceLines(lines, fn.StartLine, fn.EndLine),
			Tokens:         tokens,
			ContentHash:    contentHash(tokens),
			NormalizedHash: normalizedHash(canonical),
		})
	}

	return methods, nil
}

// skipName reports whether a definition name disqualifies the method.
func skipName(name string) bool {
	if name == "" {
		return true
	}
	return strings.HasPrefix(name, "_") && name != "__init__"
}

// sliceLines returns the 1-based inclusive [start, end] line range joined
// with newlines.
func sliceLines(lines []string, start, end uint32) string {
	if start < 1 {
		start = 1
	}
	if end > uint32(len(lines)) {
		end = uint32(len(lines))
	}
	if start > end {
		return ""
	}
	return strings.Join(lines[start-1:end], "\n")
}

// contentHash digests the token stream with comment tokens removed, each
// token tagged with its kind and terminated by a zero byte.
func contentHash(tokens []parser.Token) string {
	h := blake3.New()
	for _, t := range tokens {
		if t.Kind == parser.TokenComment {
			continue
		}
		h.Write([]byte{byte(t.Kind)})
		h.Write([]byte(t.Text))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

// normalizedHash digests the canonical token sequence.
func normalizedHash(canonical []string) uint64 {
	return xxhash.Sum64String(strings.Join(canonical, " "))
}
