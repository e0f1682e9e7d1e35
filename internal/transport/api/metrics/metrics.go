// Package metrics определяет кастомные Prometheus метрики сервиса. Все имена,
// лейблы и help-строки живут здесь. Метрики регистрируются в дефолтном
// регистри через promauto при инициализации пакета.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "banco"

// TransactionsTotal счетчик проведенных и отклоненных транзакций.
// Лейблы:
//   - type: deposit | withdraw
//   - outcome: accepted | invalid_amount | insufficient_funds | not_found | error
var TransactionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_total",
		Help:      "Total number of posted ledger transactions by type and outcome.",
	},
	[]string{"type", "outcome"},
)

// AccountsCreatedTotal счетчик открытых счетов.
var AccountsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts opened.",
	},
)

// RequestDuration длительность обработки HTTP запросов.
// Лейблы:
//   - method: HTTP метод
//   - path: шаблон роута (не конкретный URL, чтобы не взрывать кардинальность)
//   - status: код ответа
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path", "status"},
)
