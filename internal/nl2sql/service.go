package nl2sql

import (
	"context"
	"log/slog"
	"strings"

	"github.com/assetdesk/assetdesk/internal/observability"
	"github.com/assetdesk/assetdesk/internal/store"
)

const (
	MessageRejected  = "I couldn't generate a suitable SQL query for that request."
	MessageNoResults = "No results found for your query in the database."
	MessageError     = "An error occurred while trying to fetch data from the database."
)

// Disposition tells the caller whether the stage produced a final answer,
// found nothing usable (keep falling back), or failed hard.
type Disposition int

const (
	DispositionAnswered Disposition = iota
	DispositionNoAnswer
	DispositionFailed
)

type Answer struct {
	Text        string
	SQL         string
	Disposition Disposition
}

type Service struct {
	translator Translator
	reader     store.Reader
	schema     string
	logger     *slog.Logger
}

func NewService(translator Translator, reader store.Reader, schema string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		translator: translator,
		reader:     reader,
		schema:     schema,
		logger:     logger,
	}
}

// TranslateAndExecute turns a free-text question into SQL, runs it, and
// renders the rows. Only statements that start with SELECT are ever executed;
// a model response of "N/A" or anything else means no SQL answer is available.
func (s *Service) TranslateAndExecute(ctx context.Context, question string) Answer {
	result, err := s.translator.Translate(ctx, Request{Question: question, Schema: s.schema})
	if err != nil {
		s.logger.Error("nl2sql translation failed", slog.String("error", err.Error()))
		observability.ObserveTranslation("error")
		return Answer{Text: MessageError, Disposition: DispositionFailed}
	}

	sql := strings.TrimSpace(result.SQL)
	if !acceptSQL(sql) {
		s.logger.Warn("nl2sql rejected generated statement", slog.String("sql", sql))
		observability.ObserveTranslation("rejected")
		return Answer{Text: MessageRejected, SQL: sql, Disposition: DispositionNoAnswer}
	}

	s.logger.Debug("nl2sql executing generated statement",
		slog.String("sql", sql),
		slog.String("model", result.Model),
	)
	rows := s.reader.Read(ctx, sql)
	if len(rows) == 0 {
		observability.ObserveTranslation("empty")
		return Answer{Text: MessageNoResults, SQL: sql, Disposition: DispositionNoAnswer}
	}

	observability.ObserveTranslation("answered")
	return Answer{Text: store.Format(rows), SQL: sql, Disposition: DispositionAnswered}
}

func acceptSQL(sql string) bool {
	if sql == "" {
		return false
	}
	if strings.EqualFold(sql, "n/a") {
		return false
	}
	return strings.HasPrefix(strings.ToUpper(sql), "SELECT")
}
