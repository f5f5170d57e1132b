package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestObserveCountsByStatus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("/api/customer/v1/cart", "GET", 200, 25*time.Millisecond)
	m.Observe("/api/customer/v1/cart", "GET", 200, 40*time.Millisecond)
	m.Observe("/api/customer/v1/cart", "POST", 503, 5*time.Millisecond)

	count := testutil.ToFloat64(m.requests.WithLabelValues("/api/customer/v1/cart", "GET", "200"))
	require.Equal(t, float64(2), count)
	count = testutil.ToFloat64(m.requests.WithLabelValues("/api/customer/v1/cart", "POST", "503"))
	require.Equal(t, float64(1), count)
}

func TestObserveNormalizesEmptyRoute(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("", "GET", 404, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.True(t, hasLabel(families, "route", "unmatched"))
}

func TestNilMetricsAreNoops(t *testing.T) {
	t.Parallel()

	var m *HTTPMetrics
	m.Observe("/x", "GET", 200, time.Millisecond)

	m = NewHTTPMetrics(nil)
	m.Observe("/x", "GET", 200, time.Millisecond)
}

func hasLabel(families []*dto.MetricFamily, name, value string) bool {
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == name && label.GetValue() == value {
					return true
				}
			}
		}
	}
	return false
}
