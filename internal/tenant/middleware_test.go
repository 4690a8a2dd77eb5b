package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httperr "github.com/aevon-lab/tillsync/internal/core/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupFunc func(ctx context.Context, uid string) (Tenant, error)

func (f lookupFunc) Resolve(ctx context.Context, uid string) (Tenant, error) { return f(ctx, uid) }

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	lookup := lookupFunc(func(_ context.Context, uid string) (Tenant, error) {
		switch uid {
		case "uid-1":
			return Tenant{UID: uid, Business: "biz-1", DeviceID: "till-1"}, nil
		case "uid-broken":
			return Tenant{}, errors.New("store down")
		default:
			return Tenant{}, ErrUnknownTenant
		}
	})

	r := gin.New()
	r.GET("/whoami", Middleware(lookup), func(c *gin.Context) {
		tn, ok := FromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"business": tn.Business})
	})

	tests := []struct {
		name      string
		uid       string
		wantCode  int
		wantError string
	}{
		{name: "resolved", uid: "uid-1", wantCode: http.StatusOK},
		{name: "missing header", wantCode: http.StatusUnauthorized, wantError: httperr.HttpUnauthenticatedError},
		{name: "unknown uid", uid: "uid-x", wantCode: http.StatusNotFound, wantError: httperr.HttpUnknownTenantError},
		{name: "store failure", uid: "uid-broken", wantCode: http.StatusInternalServerError, wantError: httperr.HttpInternalError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.uid != "" {
				req.Header.Set(Header, tc.uid)
			}
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, tc.wantCode, resp.Code)
			if tc.wantError == "" {
				assert.JSONEq(t, `{"business":"biz-1"}`, resp.Body.String())
				return
			}
			var body httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, tc.wantError, body.ErrorType)
		})
	}
}

func TestFromContext_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := FromContext(c)
	assert.False(t, ok)
}
