package duplicates

import (
	"testing"

	"github.com/dupmap/dupmap/pkg/parser"
)

// methodWithTokens builds a Method record directly, bypassing extraction.
func methodWithTokens(name string, tokens ...parser.Token) *Method {
	return &Method{Name: name, File: "test.py", StartLine: 1, EndLine: 1, Tokens: tokens}
}

// repeatTokens builds n tokens of one kind with distinct texts.
func repeatTokens(kind parser.TokenKind, n int) []parser.Token {
	tokens := make([]parser.Token, n)
	for i := range tokens {
		tokens[i] = parser.Token{Kind: kind, Text: string(rune('a' + i%26))}
	}
	return tokens
}

func TestSimilaritySelfIsOne(t *testing.T) {
	a := New()
	defer a.Close()

	m := methodWithTokens("m", repeatTokens(parser.TokenIdent, 20)...)
	if got := a.Similarity(m, m); got != 1.0 {
		t.Errorf("Similarity(m, m) = %f, want 1.0", got)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := New()
	defer a.Close()

	m1 := methodWithTokens("m1", append(repeatTokens(parser.TokenIdent, 15),
		parser.Token{Kind: parser.TokenOther, Text: "if"},
		parser.Token{Kind: parser.TokenOther, Text: "return"},
	)...)
	m2 := methodWithTokens("m2", append(repeatTokens(parser.TokenNumber, 15),
		parser.Token{Kind: parser.TokenOther, Text: "return"},
	)...)

	if a.Similarity(m1, m2) != a.Similarity(m2, m1) {
		t.Error("Similarity must be symmetric")
	}
}

func TestSimilarityBelowMinTokens(t *testing.T) {
	a := New()
	defer a.Close()

	small := methodWithTokens("small", repeatTokens(parser.TokenIdent, 14)...)
	big := methodWithTokens("big", repeatTokens(parser.TokenIdent, 20)...)

	if got := a.Similarity(small, big); got != 0.0 {
		t.Errorf("Similarity with %d raw tokens = %f, want 0.0", small.TokenCount(), got)
	}
	if got := a.Similarity(big, small); got != 0.0 {
		t.Errorf("Similarity must short-circuit on either side, got %f", got)
	}
}

func TestSimilarityIdenticalCanonicalSets(t *testing.T) {
	a := New()
	defer a.Close()

	// Different identifier names, same canonical form.
	m1 := methodWithTokens("m1",
		parser.Token{Kind: parser.TokenOther, Text: "def"},
		parser.Token{Kind: parser.TokenIdent, Text: "f"},
	)
	m2 := methodWithTokens("m2",
		parser.Token{Kind: parser.TokenOther, Text: "def"},
		parser.Token{Kind: parser.TokenIdent, Text: "g"},
	)
	m1.Tokens = append(m1.Tokens, repeatTokens(parser.TokenIdent, 15)...)
	m2.Tokens = append(m2.Tokens, repeatTokens(parser.TokenIdent, 15)...)

	if got := a.Similarity(m1, m2); got != 1.0 {
		t.Errorf("identical canonical sets should score 1.0, got %f", got)
	}
}

func TestSimilarityDisjointSets(t *testing.T) {
	a := New()
	defer a.Close()

	m1 := methodWithTokens("m1", repeatTokens(parser.TokenIdent, 20)...)
	m2 := methodWithTokens("m2", repeatTokens(parser.TokenNumber, 20)...)

	if got := a.Similarity(m1, m2); got != 0.0 {
		t.Errorf("disjoint canonical sets should score 0.0, got %f", got)
	}
}

func TestSimilarityEmptyUnion(t *testing.T) {
	a := New()
	defer a.Close()

	// Comment tokens clear the min-tokens bar but normalize away entirely.
	m1 := methodWithTokens("m1", repeatTokens(parser.TokenComment, 20)...)
	m2 := methodWithTokens("m2", repeatTokens(parser.TokenComment, 20)...)

	if got := a.Similarity(m1, m2); got != 0.0 {
		t.Errorf("empty token union should score 0.0, got %f", got)
	}
}

func TestSimilarityBounds(t *testing.T) {
	a := New()
	defer a.Close()

	m1 := methodWithTokens("m1", append(repeatTokens(parser.TokenIdent, 15),
		parser.Token{Kind: parser.TokenOther, Text: "for"},
		parser.Token{Kind: parser.TokenOther, Text: "in"},
	)...)
	m2 := methodWithTokens("m2", append(repeatTokens(parser.TokenString, 15),
		parser.Token{Kind: parser.TokenOther, Text: "for"},
	)...)

	got := a.Similarity(m1, m2)
	if got < 0.0 || got > 1.0 {
		t.Errorf("Similarity = %f, want within [0, 1]", got)
	}
}

func TestAnalyzePairsSortedAndFloored(t *testing.T) {
	a := New(WithMinTokens(1))
	defer a.Close()

	// Three methods with controlled overlap: m1/m2 identical, m3 partial.
	m1 := methodWithTokens("m1",
		parser.Token{Kind: parser.TokenOther, Text: "if"},
		parser.Token{Kind: parser.TokenOther, Text: "return"},
		parser.Token{Kind: parser.TokenOther, Text: "for"},
	)
	m2 := methodWithTokens("m2",
		parser.Token{Kind: parser.TokenOther, Text: "if"},
		parser.Token{Kind: parser.TokenOther, Text: "return"},
		parser.Token{Kind: parser.TokenOther, Text: "for"},
	)
	m3 := methodWithTokens("m3",
		parser.Token{Kind: parser.TokenOther, Text: "if"},
		parser.Token{Kind: parser.TokenOther, Text: "while"},
		parser.Token{Kind: parser.TokenOther, Text: "switch"},
	)

	pairs := a.analyzePairs([]*Method{m1, m2, m3})

	for i := 1; i < len(pairs); i++ {
		if pairs[i].Score > pairs[i-1].Score {
			t.Errorf("pairs not sorted descending at %d: %f > %f", i, pairs[i].Score, pairs[i-1].Score)
		}
	}
	for _, p := range pairs {
		if p.Score < a.config.SimilarityFloor {
			t.Errorf("pair below floor retained: %f", p.Score)
		}
	}

	if len(pairs) == 0 || pairs[0].Score != 1.0 {
		t.Fatalf("expected identical pair first, got %+v", pairs)
	}
	if pairs[0].A.Name != "m1" || pairs[0].B.Name != "m2" {
		t.Errorf("top pair = (%s, %s), want (m1, m2)", pairs[0].A.Name, pairs[0].B.Name)
	}
}

func TestAnalyzePairsExcludesSelfPairs(t *testing.T) {
	a := New(WithMinTokens(1))
	defer a.Close()

	m := methodWithTokens("m",
		parser.Token{Kind: parser.TokenOther, Text: "if"},
	)

	pairs := a.analyzePairs([]*Method{m})
	if len(pairs) != 0 {
		t.Errorf("single method should produce no pairs, got %d", len(pairs))
	}
}
