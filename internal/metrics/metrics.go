// Package metrics registra as métricas Prometheus da API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total de requisições HTTP",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duração das requisições HTTP em segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Requisições HTTP em andamento",
		},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duração das consultas ao PostgreSQL em segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total de consultas ao PostgreSQL com erro",
		},
		[]string{"operation", "table", "error_type"},
	)

	RespostasObsoletas = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "painel_respostas_obsoletas_total",
			Help: "Respostas descartadas por pertencerem a uma seleção antiga",
		},
	)
)

// RecordDBQuery registra uma consulta. errorType vem de quem chama (SQLSTATE,
// "timeout", ...) para manter a cardinalidade baixa.
func RecordDBQuery(operation, table string, duration time.Duration, errorType string) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if errorType != "" {
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
