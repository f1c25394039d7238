package vector

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/assetdesk/assetdesk/internal/embedding"
)

// SourceDocument is a raw input text for indexing, before chunking.
type SourceDocument struct {
	Source string
	Text   string
}

// Builder produces an index artifact from raw documents: chunk, embed,
// collect. Used by the offline indexer, never by the serving path.
type Builder struct {
	embedder          embedding.Embedder
	model             string
	sentencesPerChunk int
	overlap           int
	logger            *slog.Logger
}

func NewBuilder(embedder embedding.Embedder, model string, sentencesPerChunk, overlap int, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{
		embedder:          embedder,
		model:             model,
		sentencesPerChunk: sentencesPerChunk,
		overlap:           overlap,
		logger:            logger,
	}
}

func (b *Builder) Build(ctx context.Context, sources []SourceDocument) (*Index, error) {
	idx := &Index{Model: b.model}
	for _, source := range sources {
		chunks := ChunkSentences(source.Text, b.sentencesPerChunk, b.overlap)
		for i, chunk := range chunks {
			vec, err := b.embedder.Embed(ctx, chunk)
			if err != nil {
				return nil, fmt.Errorf("embed chunk %d of %q: %w", i, source.Source, err)
			}
			if idx.Dimension == 0 {
				idx.Dimension = len(vec)
			}
			if len(vec) != idx.Dimension {
				return nil, fmt.Errorf("chunk %d of %q: embedding dimension %d, want %d", i, source.Source, len(vec), idx.Dimension)
			}
			idx.Documents = append(idx.Documents, Document{
				ID:        source.Source + ":" + strconv.Itoa(i),
				Source:    source.Source,
				Text:      chunk,
				Embedding: vec,
			})
		}
		b.logger.Info("indexed document",
			slog.String("source", source.Source),
			slog.Int("chunks", len(chunks)),
		)
	}
	if len(idx.Documents) == 0 {
		return nil, fmt.Errorf("no chunks produced from %d source documents", len(sources))
	}
	return idx, nil
}
