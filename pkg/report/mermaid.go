// Package report renders a duplication analysis as a Mermaid diagram.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dupmap/dupmap/pkg/analyzer/duplicates"
)

// Mermaid renders method inventories and their similarity relationships as
// a Mermaid flowchart.
type Mermaid struct {
	// ReviewThreshold is the minimum pair score that draws an edge and
	// marks both methods suspicious.
	ReviewThreshold float64
}

// NewMermaid creates a renderer with the given review threshold.
func NewMermaid(reviewThreshold float64) *Mermaid {
	return &Mermaid{ReviewThreshold: reviewThreshold}
}

// Render produces the diagram text: one node per method, labeled with its
// name, file basename and start line, and one edge per pair at or above
// the review threshold, labeled with the score to two decimals.
//
// A node is marked suspicious when its method name appears in any pair at
// or above the review threshold. The match is on the bare name, so
// same-named methods in different files share the marking even when no
// high-scoring pair links them directly.
//
// An empty inventory yields a diagram with no nodes and no edges.
func (r *Mermaid) Render(methods []*duplicates.Method, pairs []duplicates.Pair) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")
	b.WriteString("    subgraph \" \"\n")

	suspicious := r.suspiciousNames(pairs)

	for _, m := range methods {
		label := fmt.Sprintf("%s\\n(%s:%d)", m.Name, filepath.Base(m.File), m.StartLine)
		class := "ok"
		if suspicious[m.Name] {
			class = "review"
		}
		fmt.Fprintf(&b, "    %s[[\"%s\"]]:::%s\n", nodeID(m), label, class)
	}

	for _, p := range pairs {
		if p.Score < r.ReviewThreshold {
			continue
		}
		fmt.Fprintf(&b, "    %s -- \"%.2f\" ---> %s\n", nodeID(p.A), p.Score, nodeID(p.B))
	}

	b.WriteString("    end\n")
	b.WriteString("    classDef ok fill:#90EE90,stroke:#333\n")
	b.WriteString("    classDef review fill:#FFD700,stroke:#333,stroke-width:3px\n")

	return b.String()
}

// suspiciousNames collects the names of methods participating in any pair
// at or above the review threshold.
func (r *Mermaid) suspiciousNames(pairs []duplicates.Pair) map[string]bool {
	names := make(map[string]bool)
	for _, p := range pairs {
		if p.Score >= r.ReviewThreshold {
			names[p.A.Name] = true
			names[p.B.Name] = true
		}
	}
	return names
}

// nodeID builds a Mermaid-safe node identifier. The start line is included
// so same-named methods in one file render as distinct nodes.
func nodeID(m *duplicates.Method) string {
	return fmt.Sprintf("n_%s__%s_%d", sanitizeID(m.File), sanitizeID(m.Name), m.StartLine)
}

// sanitizeID replaces characters Mermaid cannot digest in identifiers.
func sanitizeID(id string) string {
	var b strings.Builder
	for _, c := range id {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
