package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/assetdesk/assetdesk/internal/api"
	"github.com/assetdesk/assetdesk/internal/auth"
	"github.com/assetdesk/assetdesk/internal/cache"
	"github.com/assetdesk/assetdesk/internal/chat"
	"github.com/assetdesk/assetdesk/internal/config"
	"github.com/assetdesk/assetdesk/internal/embedding"
	"github.com/assetdesk/assetdesk/internal/intent"
	"github.com/assetdesk/assetdesk/internal/nl2sql"
	"github.com/assetdesk/assetdesk/internal/observability"
	"github.com/assetdesk/assetdesk/internal/schema"
	"github.com/assetdesk/assetdesk/internal/storage"
	s3store "github.com/assetdesk/assetdesk/internal/storage/s3"
	"github.com/assetdesk/assetdesk/internal/store/postgres"
	"github.com/assetdesk/assetdesk/internal/vector"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not loaded", slog.Any("error", err))
	}

	cfg, err := config.LoadFromEnv("assetdesk-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	db, err := postgres.Open(context.Background(), postgres.DBConfig{
		DSN:             cfg.DB.DSN,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxIdleTime: cfg.DB.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	executor := postgres.NewExecutor(db, logger)
	repository := postgres.NewRepository(executor, executor)

	// Redis degrades to a no-op when unreachable; the pipeline just stops
	// caching.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	answerCache := cache.New(context.Background(), redisClient, cfg.Chat.CacheTTL, logger)
	if !answerCache.Available() {
		logger.Warn("answer cache is disabled")
	}

	var translator nl2sql.Translator
	var embedder embedding.Embedder
	if cfg.AI.Enabled {
		translator, err = nl2sql.NewOpenAITranslator(nl2sql.OpenAIConfig{
			BaseURL:     cfg.AI.BaseURL,
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			Timeout:     cfg.AI.Timeout,
		})
		if err != nil {
			logger.Error("failed to initialize sql translator", slog.Any("error", err))
			os.Exit(1)
		}
		embedder, err = embedding.NewOpenAIClient(embedding.OpenAIConfig{
			BaseURL: cfg.AI.BaseURL,
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.EmbeddingModel,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			logger.Error("failed to initialize embedding client", slog.Any("error", err))
			os.Exit(1)
		}
	}

	searcher := loadSearcher(cfg, embedder, logger)
	sqlService := nl2sql.NewService(translatorOrNoop(translator), executor, schema.Describe(), logger)
	resolver := intent.NewResolver(repository, logger)
	pipeline := chat.NewPipeline(answerCache, resolver, sqlService, searcher, cfg.VectorIndex.TopK, logger)

	deps := api.Dependencies{
		Logger:            logger,
		Pipeline:          pipeline,
		Readiness:         api.CombineReadinessChecks(api.CheckDatabaseDSN(cfg), api.CheckDatabasePing(executor.HealthCheck)),
		DependencyTimeout: time.Second,
	}
	if cfg.Auth.Required {
		validator, err := auth.NewStaticAPIKeyValidator(cfg.Auth.StaticKeys)
		if err != nil {
			logger.Error("failed to parse static auth keys", slog.Any("error", err))
			os.Exit(1)
		}
		deps.AuthMiddleware = auth.Middleware(logger, validator)
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}

// loadSearcher builds the vector stage. Any failure here is non-fatal:
// the service runs with vector search degraded to empty results.
func loadSearcher(cfg config.Config, embedder embedding.Embedder, logger *slog.Logger) *vector.Searcher {
	if embedder == nil {
		logger.Warn("vector search disabled: no embedding client")
		return vector.NewSearcher(nil, nil, logger)
	}

	indexPath := filepath.Join(cfg.VectorIndex.Dir, "index.json")

	if cfg.VectorIndex.PullFromStore {
		if err := pullIndexArtifact(cfg, indexPath); err != nil {
			logger.Warn("failed to pull vector index artifact", slog.Any("error", err))
		}
	}

	idx, err := vector.LoadIndex(indexPath)
	if err != nil {
		logger.Warn("vector index unavailable, searches return no documents",
			slog.String("path", indexPath),
			slog.Any("error", err),
		)
		return vector.NewSearcher(nil, nil, logger)
	}

	logger.Info("vector index loaded",
		slog.String("path", indexPath),
		slog.Int("documents", len(idx.Documents)),
	)
	return vector.NewSearcher(idx, embedder, logger)
}

func pullIndexArtifact(cfg config.Config, indexPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	objectStore, err := s3store.New(ctx, s3store.Config{
		Endpoint:         cfg.ObjectStore.Endpoint,
		Region:           cfg.ObjectStore.Region,
		Bucket:           cfg.ObjectStore.Bucket,
		AccessKeyID:      cfg.ObjectStore.AccessKeyID,
		SecretAccessKey:  cfg.ObjectStore.SecretAccessKey,
		UseSSL:           cfg.ObjectStore.UseSSL,
		Prefix:           cfg.ObjectStore.Prefix,
		AutoCreateBucket: false,
	})
	if err != nil {
		return err
	}
	return storage.DownloadToFile(ctx, objectStore, cfg.VectorIndex.ObjectKey, indexPath)
}

// translatorOrNoop keeps the sql stage wired when the model is disabled:
// every question is treated as untranslatable.
func translatorOrNoop(translator nl2sql.Translator) nl2sql.Translator {
	if translator != nil {
		return translator
	}
	return noopTranslator{}
}

type noopTranslator struct{}

func (noopTranslator) Translate(ctx context.Context, req nl2sql.Request) (nl2sql.Result, error) {
	return nl2sql.Result{SQL: "N/A", Provider: "disabled"}, nil
}
