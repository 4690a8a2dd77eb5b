package tenant

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/tillsync/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// Header carries the verified user uid, set by the authenticating proxy in front of us.
const Header = "X-Tenant-UID"

const contextKey = "tillsync.tenant"

// Lookup resolves a uid to a Tenant.
type Lookup interface {
	Resolve(ctx context.Context, uid string) (Tenant, error)
}

// Middleware resolves the caller's tenant and stores it on the gin context.
// Missing identity is 401, an unknown uid is 404.
func Middleware(lookup Lookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetHeader(Header)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{
				ErrorType: httperr.HttpUnauthenticatedError,
				Message:   "Missing " + Header + " header",
			})
			return
		}

		t, err := lookup.Resolve(c.Request.Context(), uid)
		if err != nil {
			if errors.Is(err, ErrUnknownTenant) {
				c.AbortWithStatusJSON(http.StatusNotFound, httperr.ErrorResponse{
					ErrorType: httperr.HttpUnknownTenantError,
					Message:   "No business profile for this user",
				})
				return
			}

			slog.Error("[Tenant] Failed to resolve tenant", "uid", uid, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to resolve tenant",
			})
			return
		}

		c.Set(contextKey, t)
		c.Next()
	}
}

// FromContext returns the tenant stored by Middleware.
func FromContext(c *gin.Context) (Tenant, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Tenant{}, false
	}
	t, ok := v.(Tenant)
	return t, ok
}
