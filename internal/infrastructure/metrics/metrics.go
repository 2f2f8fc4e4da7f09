package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the counters and histograms the ledger engine, outbox relay
// and HTTP layer report to.
type Metrics struct {
	// Ledger metrics
	TransactionsCreated *prometheus.CounterVec
	TransactionsUpdated prometheus.Counter
	TransactionsDeleted prometheus.Counter
	TransactionDuration *prometheus.HistogramVec
	TransactionAmount   *prometheus.HistogramVec
	FeeAmount           prometheus.Histogram
	TransactionErrors   *prometheus.CounterVec
	StorageRetries      *prometheus.CounterVec

	// Owner metrics
	OwnersRegistered prometheus.Counter
	OwnersOnboarded  prometheus.Counter

	// Report metrics
	ReportsGenerated *prometheus.CounterVec
	ReportsExported  *prometheus.CounterVec

	// Outbox metrics
	EventsPublished    *prometheus.CounterVec
	EventPublishErrors prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New registers the ledger metrics on the default registry served at
// /metrics. It may be called once per process.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the ledger metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TransactionsCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gcashledger_transactions_created_total",
				Help: "Total number of ledger transactions created by kind",
			},
			[]string{"kind"},
		),
		TransactionsUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "gcashledger_transactions_updated_total",
			Help: "Total number of ledger transactions updated",
		}),
		TransactionsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "gcashledger_transactions_deleted_total",
			Help: "Total number of ledger transactions deleted",
		}),
		TransactionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gcashledger_transaction_duration_seconds",
				Help:    "Duration of ledger engine operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		TransactionAmount: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gcashledger_transaction_amount",
				Help:    "Transaction amounts by kind",
				Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
			},
			[]string{"kind"},
		),
		FeeAmount: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gcashledger_fee_amount",
			Help:    "Fee earned per transaction",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 500},
		}),
		TransactionErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gcashledger_transaction_errors_total",
				Help: "Total number of rejected ledger operations by type",
			},
			[]string{"error_type"},
		),
		StorageRetries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gcashledger_storage_retries_total",
				Help: "Ledger writes re-run after a transient Postgres error, by SQLSTATE",
			},
			[]string{"code"},
		),

		OwnersRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "gcashledger_owners_registered_total",
			Help: "Total number of owners registered",
		}),
		OwnersOnboarded: f.NewCounter(prometheus.CounterOpts{
			Name: "gcashledger_owners_onboarded_total",
			Help: "Total number of owners that completed onboarding",
		}),

		ReportsGenerated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gcashledger_reports_generated_total",
				Help: "Total reports generated by period",
			},
			[]string{"period"},
		),
		ReportsExported: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gcashledger_reports_exported_total",
				Help: "Total reports exported by format",
			},
			[]string{"format"},
		),

		EventsPublished: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gcashledger_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
		EventPublishErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "gcashledger_event_publish_errors_total",
			Help: "Total outbox publish failures",
		}),

		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gcashledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gcashledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gcashledger_cache_lookups_total",
				Help: "Balance cache lookups by result",
			},
			[]string{"result"},
		),

		AuthAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gcashledger_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		RateLimitHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gcashledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}

// ObserveEntry records a committed cash-in or cash-out.
func (m *Metrics) ObserveEntry(kind string, amount, fee float64) {
	m.TransactionsCreated.WithLabelValues(kind).Inc()
	m.TransactionAmount.WithLabelValues(kind).Observe(amount)
	m.FeeAmount.Observe(fee)
}
