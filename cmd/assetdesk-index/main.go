package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/assetdesk/assetdesk/internal/config"
	"github.com/assetdesk/assetdesk/internal/embedding"
	"github.com/assetdesk/assetdesk/internal/observability"
	"github.com/assetdesk/assetdesk/internal/storage"
	s3store "github.com/assetdesk/assetdesk/internal/storage/s3"
	"github.com/assetdesk/assetdesk/internal/vector"
)

// assetdesk-index builds the vector-index artifact from a directory of
// plain-text reference documents and optionally publishes it to the
// object store for serving instances to pull.
func main() {
	docsDir := flag.String("docs", "./docs", "directory of .txt/.md reference documents")
	indexName := flag.String("name", "asset-faq", "index artifact name")
	sentences := flag.Int("sentences", 5, "sentences per chunk")
	overlap := flag.Int("overlap", 1, "overlapping sentences between chunks")
	publish := flag.Bool("publish", false, "upload the artifact to the object store")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv("assetdesk-index")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg, os.Stdout)

	if !cfg.AI.Enabled {
		logger.Error("indexing requires the embedding client, set ASSETDESK_AI_ENABLED=true")
		os.Exit(1)
	}
	embedder, err := embedding.NewOpenAIClient(embedding.OpenAIConfig{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.EmbeddingModel,
		Timeout: cfg.AI.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize embedding client", slog.Any("error", err))
		os.Exit(1)
	}

	sources, err := readSources(*docsDir)
	if err != nil {
		logger.Error("failed to read documents", slog.Any("error", err))
		os.Exit(1)
	}
	if len(sources) == 0 {
		logger.Error("no .txt or .md documents found", slog.String("dir", *docsDir))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	builder := vector.NewBuilder(embedder, cfg.AI.EmbeddingModel, *sentences, *overlap, logger)
	idx, err := builder.Build(ctx, sources)
	if err != nil {
		logger.Error("index build failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.VectorIndex.Dir, 0o755); err != nil {
		logger.Error("failed to create index dir", slog.Any("error", err))
		os.Exit(1)
	}
	indexPath := filepath.Join(cfg.VectorIndex.Dir, "index.json")
	if err := idx.Save(indexPath); err != nil {
		logger.Error("failed to save index artifact", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("index artifact written",
		slog.String("path", indexPath),
		slog.Int("documents", len(idx.Documents)),
		slog.Int("dimension", idx.Dimension),
	)

	if !*publish {
		return
	}
	if err := publishArtifact(ctx, cfg, *indexName, indexPath); err != nil {
		logger.Error("failed to publish index artifact", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("index artifact published", slog.String("name", *indexName))
}

func readSources(dir string) ([]vector.SourceDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var sources []vector.SourceDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		sources = append(sources, vector.SourceDocument{
			Source: strings.TrimSuffix(entry.Name(), ext),
			Text:   string(raw),
		})
	}
	return sources, nil
}

func publishArtifact(ctx context.Context, cfg config.Config, indexName, indexPath string) error {
	objectStore, err := s3store.New(ctx, s3store.Config{
		Endpoint:         cfg.ObjectStore.Endpoint,
		Region:           cfg.ObjectStore.Region,
		Bucket:           cfg.ObjectStore.Bucket,
		AccessKeyID:      cfg.ObjectStore.AccessKeyID,
		SecretAccessKey:  cfg.ObjectStore.SecretAccessKey,
		UseSSL:           cfg.ObjectStore.UseSSL,
		Prefix:           cfg.ObjectStore.Prefix,
		AutoCreateBucket: cfg.ObjectStore.AutoCreateBucket,
	})
	if err != nil {
		return err
	}

	datedKey, err := storage.BuildIndexArtifactPath(indexName, time.Now())
	if err != nil {
		return err
	}
	if _, err := storage.UploadFile(ctx, objectStore, indexPath, datedKey, "application/json"); err != nil {
		return err
	}

	latestKey, err := storage.LatestIndexArtifactPath(indexName)
	if err != nil {
		return err
	}
	_, err = storage.UploadFile(ctx, objectStore, indexPath, latestKey, "application/json")
	return err
}
