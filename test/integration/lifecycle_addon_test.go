//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduler_PollsRegisteredDevices(t *testing.T) {
	h := startHarnessWithScheduler(t, 200*time.Millisecond)
	defer h.close(t)

	h.till.load(row("S1", "b@x.com", "Tea", 2, 300))

	require.Eventually(t, func() bool {
		_, clears := h.till.counts()
		return clears > 0 && h.till.buffered() == 0
	}, 10*time.Second, 100*time.Millisecond)

	status, body := call(t, h, http.MethodGet, "/v1/reports?periodType=year", "uid-1")
	require.Equal(t, http.StatusOK, status, string(body))

	var reports reportsPayload
	require.NoError(t, json.Unmarshal(body, &reports))
	require.Len(t, reports.Values, 1)
	require.Equal(t, int64(300), reports.Values[0].TotalRevenue)
}

func TestLifecycle_RebuildRepairsAggregates(t *testing.T) {
	h := startHarness(t)
	defer h.close(t)

	h.till.load(
		row("T1", "a@x.com", "Coffee", 1, 350),
		row("T2", "c@x.com", "Muffin", 1, 500),
	)
	status, body := call(t, h, http.MethodPost, "/v1/cycles", "uid-1")
	require.Equal(t, http.StatusOK, status, string(body))

	t.Run("health endpoint", func(t *testing.T) {
		status, body := call(t, h, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, status, string(body))
	})

	t.Run("corrupt an aggregate behind the engine's back", func(t *testing.T) {
		_, err := h.db.Exec(`
			UPDATE documents
			SET body = jsonb_set(body, '{totalRevenue}', '1')
			WHERE business = 'biz-1' AND id = 'day-2025-01-15'
		`)
		require.NoError(t, err)
	})

	t.Run("rebuild recomputes from orders", func(t *testing.T) {
		status, body := call(t, h, http.MethodPost, "/v1/reports/rebuild", "uid-1")
		require.Equal(t, http.StatusOK, status, string(body))

		var summary struct {
			OrderCount int `json:"orderCount"`
			Aggregates int `json:"aggregates"`
		}
		require.NoError(t, json.Unmarshal(body, &summary))
		require.Equal(t, 2, summary.OrderCount)
		require.Equal(t, 4, summary.Aggregates)
	})

	t.Run("reports reflect the repaired totals", func(t *testing.T) {
		status, body := call(t, h, http.MethodGet, "/v1/reports?periodType=day", "uid-1")
		require.Equal(t, http.StatusOK, status, string(body))

		var reports reportsPayload
		require.NoError(t, json.Unmarshal(body, &reports))
		require.Len(t, reports.Values, 1)
		require.Equal(t, int64(850), reports.Values[0].TotalRevenue)
		require.Equal(t, int64(2), reports.Values[0].OrderCount)
	})

	t.Run("second cycle with empty buffer does not ack", func(t *testing.T) {
		_, clearsBefore := h.till.counts()
		status, body := call(t, h, http.MethodPost, "/v1/cycles", "uid-1")
		require.Equal(t, http.StatusOK, status, string(body))
		_, clearsAfter := h.till.counts()
		require.Equal(t, clearsBefore, clearsAfter)
	})
}
