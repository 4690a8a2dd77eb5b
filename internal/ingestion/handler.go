package ingestion

import (
	"errors"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/tillsync/internal/core/errors"
	"github.com/aevon-lab/tillsync/internal/devicesync"
	"github.com/aevon-lab/tillsync/internal/tenant"
	"github.com/gin-gonic/gin"
)

const (
	msgNoTenant       = "Tenant not resolved"
	msgDeviceTimeout  = "Device did not reply in time"
	msgDeviceOffline  = "Device is not reachable"
	msgDeviceBadReply = "Device sent an unreadable reply"
	msgCycleFailed    = "Failed to run aggregation cycle"
	msgRebuildFailed  = "Failed to rebuild aggregates"
)

// ingestionError carries the structured HTTP error shape from a helper back to the handler.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
}

func (e *ingestionError) Error() string {
	return e.message
}

// RunCycleHandler pulls the caller's device buffer and folds it into the reports.
// A transport failure is a 503: nothing was written and the call can be retried.
func (s *Service) RunCycleHandler(c *gin.Context) {
	t, ok := tenant.FromContext(c)
	if !ok {
		writeError(c, &ingestionError{http.StatusUnauthorized, httperr.HttpUnauthenticatedError, msgNoTenant})
		return
	}

	summary, err := s.runner.RunCycle(c.Request.Context(), t)
	if err != nil {
		writeError(c, cycleError(err))
		return
	}

	c.JSON(http.StatusOK, summary)
}

// RebuildHandler recomputes the caller's aggregates from stored orders.
func (s *Service) RebuildHandler(c *gin.Context) {
	t, ok := tenant.FromContext(c)
	if !ok {
		writeError(c, &ingestionError{http.StatusUnauthorized, httperr.HttpUnauthenticatedError, msgNoTenant})
		return
	}

	summary, err := s.runner.Rebuild(c.Request.Context(), t.Business)
	if err != nil {
		slog.Error("[Ingestion] Rebuild failed", "business", t.Business, "error", err)
		writeError(c, &ingestionError{http.StatusInternalServerError, httperr.HttpInternalError, msgRebuildFailed})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// cycleError maps orchestrator failures onto HTTP responses.
func cycleError(err error) *ingestionError {
	switch {
	case errors.Is(err, devicesync.ErrTimeout):
		return &ingestionError{http.StatusServiceUnavailable, httperr.HttpDeviceTimeoutError, msgDeviceTimeout}
	case errors.Is(err, devicesync.ErrUnavailable):
		return &ingestionError{http.StatusServiceUnavailable, httperr.HttpDeviceUnavailableError, msgDeviceOffline}
	case errors.Is(err, devicesync.ErrBadReply):
		return &ingestionError{http.StatusServiceUnavailable, httperr.HttpDeviceBadReplyError, msgDeviceBadReply}
	default:
		slog.Error("[Ingestion] Cycle failed", "error", err)
		return &ingestionError{http.StatusInternalServerError, httperr.HttpInternalError, msgCycleFailed}
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
	})
}
