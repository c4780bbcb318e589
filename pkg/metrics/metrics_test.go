package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOrderOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveOrder("create", nil)
	m.ObserveOrder("create", nil)
	m.ObserveOrder("create", errors.New("insufficient stock"))

	if got := testutil.ToFloat64(m.Orders.WithLabelValues("create", OutcomeSuccess)); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Orders.WithLabelValues("create", OutcomeFailure)); got != 1 {
		t.Errorf("failure count = %v, want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveOrder("create", nil)
	m.ObserveMovement("kitchen", "sale")
	m.ObserveRequest("/pos.v1.OrderService/CreateOrder", "OK", time.Millisecond)
}

func TestHandlerExposesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveMovement("kitchen", "sale")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if !strings.Contains(rec.Body.String(), `pos_stock_movements_total{tier="kitchen",type="sale"} 1`) {
		t.Fatalf("metric missing from output:\n%s", rec.Body.String())
	}
}
