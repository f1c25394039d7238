package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	chatAnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_chat_answers_total",
			Help: "Total number of chat answers by resolving pipeline stage.",
		},
		[]string{"stage"},
	)
	cacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_cache_lookups_total",
			Help: "Total number of answer cache lookups by result.",
		},
		[]string{"result"},
	)
	nl2sqlTranslationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_nl2sql_translations_total",
			Help: "Total number of NL to SQL translations by outcome.",
		},
		[]string{"outcome"},
	)
	vectorSearchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assetdesk_vector_searches_total",
			Help: "Total number of vector similarity searches.",
		},
	)
	storeQueryFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assetdesk_store_query_failures_total",
			Help: "Total number of absorbed relational query failures.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		chatAnswersTotal,
		cacheLookupsTotal,
		nl2sqlTranslationsTotal,
		vectorSearchesTotal,
		storeQueryFailuresTotal,
	)
}

func ObserveChatAnswer(stage string) {
	chatAnswersTotal.WithLabelValues(stage).Inc()
}

func ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(result).Inc()
}

func ObserveTranslation(outcome string) {
	nl2sqlTranslationsTotal.WithLabelValues(outcome).Inc()
}

func ObserveVectorSearch() {
	vectorSearchesTotal.Inc()
}

func ObserveStoreQueryFailure(kind string) {
	storeQueryFailuresTotal.WithLabelValues(kind).Inc()
}
