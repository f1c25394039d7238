// Package vector provides similarity search over a pre-built document
// index. The index is a JSON artifact produced offline; the service
// consumes it read-only and degrades to empty results when it is missing.
package vector

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// Document is one indexed chunk of reference text.
type Document struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding"`
}

// Index holds the loaded artifact in memory. Search is brute-force cosine
// over every document; index sizes here are small enough that nothing
// smarter is warranted.
type Index struct {
	Model     string     `json:"model"`
	Dimension int        `json:"dimension"`
	Documents []Document `json:"documents"`
}

func LoadIndex(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index artifact: %w", err)
	}
	var idx Index
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("decode index artifact: %w", err)
	}
	if idx.Dimension <= 0 {
		return nil, fmt.Errorf("index artifact has invalid dimension %d", idx.Dimension)
	}
	for i, doc := range idx.Documents {
		if len(doc.Embedding) != idx.Dimension {
			return nil, fmt.Errorf("document %d has embedding dimension %d, want %d", i, len(doc.Embedding), idx.Dimension)
		}
	}
	return &idx, nil
}

func (idx *Index) Save(path string) error {
	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encode index artifact: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write index artifact: %w", err)
	}
	return nil
}

type scored struct {
	doc   Document
	score float64
}

// Nearest returns up to k documents ranked by descending cosine
// similarity with the query vector.
func (idx *Index) Nearest(query []float64, k int) []Document {
	if k <= 0 || len(idx.Documents) == 0 {
		return nil
	}

	results := make([]scored, 0, len(idx.Documents))
	for _, doc := range idx.Documents {
		results = append(results, scored{doc: doc, score: cosine(query, doc.Embedding)})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })

	if k > len(results) {
		k = len(results)
	}
	docs := make([]Document, 0, k)
	for _, r := range results[:k] {
		docs = append(docs, r.doc)
	}
	return docs
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
