package ingestion

import (
	"context"

	v1 "github.com/aevon-lab/tillsync/internal/api/v1"
	"github.com/aevon-lab/tillsync/internal/tenant"
	"github.com/gin-gonic/gin"
)

// CycleRunner is the orchestrator surface the HTTP trigger needs.
type CycleRunner interface {
	RunCycle(ctx context.Context, t tenant.Tenant) (*v1.CycleSummary, error)
	Rebuild(ctx context.Context, business string) (*v1.RebuildSummary, error)
}

type Service struct {
	runner CycleRunner
	auth   gin.HandlerFunc
}

// NewService builds the on-demand cycle trigger. auth resolves the caller's tenant,
// normally tenant.Middleware.
func NewService(runner CycleRunner, auth gin.HandlerFunc) *Service {
	if runner == nil {
		panic("ingestion: runner must not be nil")
	}
	if auth == nil {
		panic("ingestion: auth middleware must not be nil")
	}
	return &Service{runner: runner, auth: auth}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/v1", s.auth)
	g.POST("/cycles", s.RunCycleHandler)
	g.POST("/reports/rebuild", s.RebuildHandler)
}
