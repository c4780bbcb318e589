package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pos"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the service's collectors. Build one per registry.
type Metrics struct {
	Orders          *prometheus.CounterVec
	StockMovements  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Order engine operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		StockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_total",
			Help:      "Inventory quantity changes by tier and movement type.",
		}, []string{"tier", "type"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "Unary gRPC handling time.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}
	reg.MustRegister(m.Orders, m.StockMovements, m.RequestDuration)
	return m
}

// ObserveOrder counts one order engine call.
func (m *Metrics) ObserveOrder(operation string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.Orders.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveMovement(tier, movementType string) {
	if m == nil {
		return
	}
	m.StockMovements.WithLabelValues(tier, movementType).Inc()
}

func (m *Metrics) ObserveRequest(method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(method, code).Observe(elapsed.Seconds())
}

// Handler exposes the collectors of g over HTTP.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
