package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.CycleFinished(OutcomeSuccess, 120*time.Millisecond)
	m.CycleFinished(OutcomeSuccess, 80*time.Millisecond)
	m.CycleFinished(OutcomeFetchFailed, 3*time.Second)
	m.RowsSkipped(2)
	m.RowsSkipped(0)
	m.OrdersIngested(5)
	m.DuplicateOrders(1)
	m.AggregateUpsertFailed()
	m.AckFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cycles.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cycles.WithLabelValues(OutcomeFetchFailed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rowsSkipped))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.ordersIngested))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.duplicateOrders))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upsertFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ackFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(m.cycleDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CycleFinished(OutcomeSuccess, time.Second)
		m.RowsSkipped(1)
		m.OrdersIngested(1)
		m.DuplicateOrders(1)
		m.AggregateUpsertFailed()
		m.AckFailed()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.OrdersIngested(3)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "tillsync_ingest_orders_total 3"))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
