package dynamo

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records client activity as Prometheus collectors.
// A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	retries  *prometheus.CounterVec
	capacity *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the client collectors under namespace and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dynamodb_requests_total",
				Help:      "Total number of DynamoDB requests",
			},
			[]string{"operation", "table", "status"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dynamodb_retries_total",
				Help:      "Total number of retried DynamoDB calls",
			},
			[]string{"operation", "table"},
		),
		capacity: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dynamodb_consumed_capacity_units_total",
				Help:      "Capacity units consumed, as reported by DynamoDB",
			},
			[]string{"operation", "table"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dynamodb_request_duration_seconds",
				Help:      "DynamoDB request duration in seconds, including retries",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.requests, m.retries, m.capacity, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(op, table string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.requests.WithLabelValues(op, table, status).Inc()
	m.duration.WithLabelValues(op, table).Observe(time.Since(start).Seconds())
}

func (m *Metrics) retried(op, table string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(op, table).Inc()
}

func (m *Metrics) consumed(op, table string, cc *ConsumedCapacity) {
	if m == nil || cc == nil {
		return
	}
	m.capacity.WithLabelValues(op, table).Add(cc.Total())
}
