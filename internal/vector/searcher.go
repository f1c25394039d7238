package vector

import (
	"context"
	"log/slog"

	"github.com/assetdesk/assetdesk/internal/embedding"
	"github.com/assetdesk/assetdesk/internal/observability"
)

// Searcher answers similarity queries against a loaded index. When no
// index was loaded, or the query cannot be embedded, it returns an empty
// result rather than an error.
type Searcher struct {
	index    *Index
	embedder embedding.Embedder
	logger   *slog.Logger
}

func NewSearcher(index *Index, embedder embedding.Embedder, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Searcher{index: index, embedder: embedder, logger: logger}
}

// Available reports whether an index is loaded and searchable.
func (s *Searcher) Available() bool {
	return s.index != nil && s.embedder != nil && len(s.index.Documents) > 0
}

func (s *Searcher) Search(ctx context.Context, question string, k int) []Document {
	if !s.Available() {
		return nil
	}

	query, err := s.embedder.Embed(ctx, question)
	if err != nil {
		s.logger.Error("embedding search query failed", slog.String("error", err.Error()))
		return nil
	}

	docs := s.index.Nearest(query, k)
	observability.ObserveVectorSearch()
	return docs
}
