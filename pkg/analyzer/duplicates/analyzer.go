// Package duplicates detects near-duplicate methods by comparing
// normalized token sets with the Jaccard index.
package duplicates

import (
	"sort"

	"github.com/dupmap/dupmap/pkg/config"
	"github.com/dupmap/dupmap/pkg/parser"
	"gonum.org/v1/gonum/stat"
)

// Analyzer extracts methods from source files and scores every pair.
type Analyzer struct {
	parser *parser.Parser
	config Config
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithMinTokens sets the minimum raw token count for a method to be compared.
func WithMinTokens(minTokens int) Option {
	return func(a *Analyzer) {
		a.config.MinTokens = minTokens
	}
}

// WithSimilarityFloor sets the minimum score for a pair to be retained.
func WithSimilarityFloor(floor float64) Option {
	return func(a *Analyzer) {
		a.config.SimilarityFloor = floor
	}
}

// WithReviewThreshold sets the minimum score to flag a pair for review.
func WithReviewThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		a.config.ReviewThreshold = threshold
	}
}

// WithConfig sets all cutoffs from a threshold config.
func WithConfig(cfg config.ThresholdConfig) Option {
	return func(a *Analyzer) {
		a.config = Config{
			SimilarityFloor: cfg.SimilarityFloor,
			ReviewThreshold: cfg.ReviewThreshold,
			MinTokens:       cfg.MinTokens,
		}
	}
}

// New creates a new duplicate-method analyzer with default cutoffs.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		parser: parser.New(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Config returns the analyzer's active cutoffs.
func (a *Analyzer) Config() Config {
	return a.config
}

// ProgressFunc is called once per processed file.
type ProgressFunc func()

// AnalyzeProject extracts the method inventory from the given files and
// scores every unordered method pair. Files run sequentially in the given
// order; a file that fails to parse is skipped and recorded in the
// analysis rather than aborting the run.
func (a *Analyzer) AnalyzeProject(files []string) (*Analysis, error) {
	return a.AnalyzeProjectWithProgress(files, nil)
}

// AnalyzeProjectWithProgress is AnalyzeProject with a per-file progress
// callback.
func (a *Analyzer) AnalyzeProjectWithProgress(files []string, onProgress ProgressFunc) (*Analysis, error) {
	analysis := &Analysis{
		Methods: make([]*Method, 0),
		Pairs:   make([]Pair, 0),
	}

	for _, path := range files {
		methods, err := a.ExtractFile(path)
		if err != nil {
			analysis.Skipped = append(analysis.Skipped, SkippedFile{
				Path:   path,
				Reason: err.Error(),
			})
		} else {
			analysis.Methods = append(analysis.Methods, methods...)
		}
		if onProgress != nil {
			onProgress()
		}
	}

	analysis.Pairs = a.analyzePairs(analysis.Methods)
	analysis.Summary = a.summarize(analysis)

	return analysis, nil
}

// summarize computes aggregate statistics over the retained pairs.
func (a *Analyzer) summarize(analysis *Analysis) Summary {
	s := Summary{
		MethodCount: len(analysis.Methods),
		PairCount:   len(analysis.Pairs),
	}

	if len(analysis.Pairs) == 0 {
		return s
	}

	scores := make([]float64, len(analysis.Pairs))
	for i, p := range analysis.Pairs {
		scores[i] = p.Score
		if p.Score >= a.config.ReviewThreshold {
			s.ReviewPairCount++
		}
	}

	s.MeanScore = stat.Mean(scores, nil)

	sort.Float64s(scores)
	s.P50Score = stat.Quantile(0.50, stat.Empirical, scores, nil)
	s.P95Score = stat.Quantile(0.95, stat.Empirical, scores, nil)

	return s
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}
