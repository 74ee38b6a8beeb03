package duplicates

import (
	"github.com/dupmap/dupmap/pkg/parser"
)

// Method represents one extracted function or method definition.
// Records are immutable once created; no identity beyond
// (file, name, start line) is enforced, so two same-named methods in one
// file produce two distinct records.
type Method struct {
	Name      string `json:"name"`
	File      string `json:"file"`
	StartLine uint32 `json:"start_line"`
	EndLine   uint32 `json:"end_line"`

	// SourceText is the exact source slice for the line range.
	SourceText string `json:"-"`

	// Tokens is the classified lexical token stream for the method's
	// line range.
	Tokens []parser.Token `json:"-"`

	// ContentHash is a blake3 digest over the comment-stripped token
	// stream.
	ContentHash string `json:"content_hash"`

	// NormalizedHash is an xxhash over the canonical token sequence.
	NormalizedHash uint64 `json:"normalized_hash"`
}

// TokenCount returns the raw token count for the method.
func (m *Method) TokenCount() int {
	return len(m.Tokens)
}

// Pair is one scored unordered method pair that cleared the similarity
// floor. Held in memory for the renderer; never persisted.
type Pair struct {
	A     *Method `json:"a"`
	B     *Method `json:"b"`
	Score float64 `json:"score"`
}

// SkippedFile records a file the extractor could not process.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Summary provides aggregate statistics over the pair list.
type Summary struct {
	MethodCount     int     `json:"method_count"`
	PairCount       int     `json:"pair_count"`
	ReviewPairCount int     `json:"review_pair_count"`
	MeanScore       float64 `json:"mean_score"`
	P50Score        float64 `json:"p50_score"`
	P95Score        float64 `json:"p95_score"`
}

// Analysis is the full result of one duplication scan.
type Analysis struct {
	Methods []*Method     `json:"methods"`
	Pairs   []Pair        `json:"pairs"`
	Skipped []SkippedFile `json:"skipped,omitempty"`
	Summary Summary       `json:"summary"`
}

// Config holds the similarity cutoffs for pair analysis.
type Config struct {
	// SimilarityFloor is the minimum score for a pair to be retained.
	SimilarityFloor float64
	// ReviewThreshold is the minimum score to flag a pair for review.
	ReviewThreshold float64
	// MinTokens is the minimum raw token count for a method to be
	// compared at all.
	MinTokens int
}

// DefaultConfig returns the default cutoffs.
func DefaultConfig() Config {
	return Config{
		SimilarityFloor: 0.30,
		ReviewThreshold: 0.75,
		MinTokens:       15,
	}
}
