package projection

import (
	"errors"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/tillsync/internal/core/errors"
	"github.com/aevon-lab/tillsync/internal/tenant"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/v1", s.auth)
	g.GET("/reports", s.HandleQueryReports)
	g.GET("/orders", s.HandleListOrders)
}

// HandleQueryReports handles GET /v1/reports
// Query parameters: periodType, from, to
func (s *Service) HandleQueryReports(c *gin.Context) {
	t, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnauthenticatedError,
			Message:   "Tenant not resolved",
		})
		return
	}

	var req ReportQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}
	req.Business = t.Business

	resp, err := s.QueryReports(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, err, "Failed to query reports")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleListOrders handles GET /v1/orders
func (s *Service) HandleListOrders(c *gin.Context) {
	t, ok := tenant.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnauthenticatedError,
			Message:   "Tenant not resolved",
		})
		return
	}

	resp, err := s.ListOrders(c.Request.Context(), t.Business)
	if err != nil {
		writeQueryError(c, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func writeQueryError(c *gin.Context, err error, message string) {
	if errors.Is(err, ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid report query",
			Details:   err.Error(),
		})
		return
	}

	slog.Error("[Projection] Query failed", "error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   message,
	})
}
