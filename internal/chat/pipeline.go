// Package chat orchestrates answer resolution for a single question.
// Stages run cheapest-first: canned replies, cache, intent lookups,
// model-generated SQL, vector retrieval, then a fixed fallback. Each stage
// reports a typed result; the pipeline never inspects answer text to
// decide control flow.
package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/assetdesk/assetdesk/internal/intent"
	"github.com/assetdesk/assetdesk/internal/nl2sql"
	"github.com/assetdesk/assetdesk/internal/observability"
	"github.com/assetdesk/assetdesk/internal/vector"
)

const MessageFallback = "Sorry, I couldn't find relevant information for your query."

type AnswerCache interface {
	Get(ctx context.Context, question string) (string, bool)
	Put(ctx context.Context, question, answer string)
}

type IntentResolver interface {
	Resolve(ctx context.Context, matched intent.Intent, question string) (string, bool)
}

type SQLAnswerer interface {
	TranslateAndExecute(ctx context.Context, question string) nl2sql.Answer
}

type DocumentSearcher interface {
	Search(ctx context.Context, question string, k int) []vector.Document
}

type Pipeline struct {
	cache    AnswerCache
	resolver IntentResolver
	sql      SQLAnswerer
	searcher DocumentSearcher
	topK     int
	logger   *slog.Logger
}

func NewPipeline(cache AnswerCache, resolver IntentResolver, sql SQLAnswerer, searcher DocumentSearcher, topK int, logger *slog.Logger) *Pipeline {
	if topK <= 0 {
		topK = 3
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		cache:    cache,
		resolver: resolver,
		sql:      sql,
		searcher: searcher,
		topK:     topK,
		logger:   logger,
	}
}

// Answer resolves one question. Every non-canned answer, including the
// fallback, is written back to the cache before returning.
func (p *Pipeline) Answer(ctx context.Context, question string) string {
	if reply, ok := cannedReply(question); ok {
		observability.ObserveChatAnswer("canned")
		return reply
	}

	if answer, hit := p.cache.Get(ctx, question); hit {
		observability.ObserveChatAnswer("cache")
		return answer
	}

	answer, stage := p.resolve(ctx, question)
	observability.ObserveChatAnswer(stage)
	p.logger.Info("question resolved",
		slog.String("stage", stage),
		slog.Int("question_len", len(question)),
	)

	p.cache.Put(ctx, question, answer)
	return answer
}

func (p *Pipeline) resolve(ctx context.Context, question string) (answer, stage string) {
	if matched, ok := intent.Match(question); ok {
		if answer, ok := p.resolver.Resolve(ctx, matched, question); ok {
			return answer, "intent"
		}
	}

	sqlAnswer := p.sql.TranslateAndExecute(ctx, question)
	switch sqlAnswer.Disposition {
	case nl2sql.DispositionAnswered:
		return sqlAnswer.Text, "nl2sql"
	case nl2sql.DispositionFailed:
		return sqlAnswer.Text, "nl2sql_error"
	}

	if docs := p.searcher.Search(ctx, question, p.topK); len(docs) > 0 {
		texts := make([]string, 0, len(docs))
		for _, doc := range docs {
			texts = append(texts, doc.Text)
		}
		return "I found some related information: " + strings.Join(texts, ", "), "vector"
	}

	return MessageFallback, "fallback"
}
