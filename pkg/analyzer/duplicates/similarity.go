package duplicates

import (
	"sort"
)

// Similarity returns the token-set similarity of two methods in [0, 1].
//
// Methods below the minimum raw token count score 0: they are too small to
// compare meaningfully. Otherwise both token streams are normalized, the
// canonical sequences are treated as sets (order and duplicate counts
// deliberately discarded), and the Jaccard index |A∩B| / |A∪B| is returned,
// 0 when the union is empty. Symmetric and deterministic.
func (a *Analyzer) Similarity(m1, m2 *Method) float64 {
	if len(m1.Tokens) < a.config.MinTokens || len(m2.Tokens) < a.config.MinTokens {
		return 0.0
	}

	set1 := canonicalSet(Normalize(m1.Tokens))
	set2 := canonicalSet(Normalize(m2.Tokens))

	intersection := 0
	for tok := range set1 {
		if _, ok := set2[tok]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// analyzePairs scores every unordered pair of distinct methods, retains
// pairs at or above the similarity floor, and sorts them by score
// descending (stable). Quadratic in the number of methods; no candidate
// pruning is applied before the pairwise pass.
func (a *Analyzer) analyzePairs(methods []*Method) []Pair {
	var pairs []Pair
	for i := 0; i < len(methods); i++ {
		for j := i + 1; j < len(methods); j++ {
			score := a.Similarity(methods[i], methods[j])
			if score >= a.config.SimilarityFloor {
				pairs = append(pairs, Pair{
					A:     methods[i],
					B:     methods[j],
					Score: score,
				})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Score > pairs[j].Score
	})

	return pairs
}
