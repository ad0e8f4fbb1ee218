package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/twinstack/asset-twin-service/pkg/twin"
	"golang.org/x/time/rate"
)

const HeaderTenantID = "X-Tenant-ID"

type RestfulServer struct {
	Server           *gin.Engine
	Twin             *twin.Twin
	RateLimiterStore *twin.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(tenantID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(tenantID)
	}
}

func (rs *RestfulServer) CheckTenantLimiter(tenantID string) bool {
	limiter := rs.GetLimiter(tenantID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(tenantID string, tenantRate float64, tenantBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(tenantID, rate.Limit(tenantRate), tenantBurst)
}

// tenantID pulls the mandatory tenant header. There is no fallback tenant:
// a request without one is rejected outright.
func (rs *RestfulServer) tenantID(c *gin.Context) (string, bool) {
	tenantID := c.GetHeader(HeaderTenantID)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + HeaderTenantID + " header"})
		return "", false
	}
	return tenantID, true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, twin.ErrNotFound), errors.Is(err, twin.ErrParentNotFound):
		return http.StatusNotFound
	case errors.Is(err, twin.ErrCycleDetected),
		errors.Is(err, twin.ErrHasChildren),
		errors.Is(err, twin.ErrSubtreeTooLarge),
		errors.Is(err, twin.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, twin.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	rs.Server.POST("/tenants/limiter", rs.PostLimiter)

	assets := rs.Server.Group("/assets")
	{
		assets.POST("", rs.CreateAsset)
		assets.GET("", rs.ListAssets)
		assets.POST("/states/bulk", rs.GetBulkStates)

		asset := assets.Group("/:asset_id")
		{
			asset.GET("", rs.GetAsset)
			asset.PATCH("", rs.UpdateAsset)
			asset.DELETE("", rs.DeleteAsset)
			asset.POST("/move", rs.MoveAsset)
			asset.GET("/children", rs.GetChildren)
			asset.GET("/descendants", rs.GetDescendants)
			asset.GET("/ancestors", rs.GetAncestors)
			asset.GET("/tree", rs.GetTree)
			asset.POST("/state", rs.UpdateState)
			asset.GET("/state", rs.GetState)
			asset.POST("/alarms", rs.OpenAlarm)
			asset.DELETE("/alarms/:alarm_id", rs.CloseAlarm)
		}
	}
}
