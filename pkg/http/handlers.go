package http

import (
	"net/http"
	"strconv"

	"github.com/twinstack/asset-twin-service/pkg/models"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type CreateAssetRequest struct {
	ID        string         `json:"id"`
	ParentID  *string        `json:"parent_id"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Metadata  map[string]any `json:"metadata"`
	Latitude  *float64       `json:"latitude"`
	Longitude *float64       `json:"longitude"`
	CreatedBy string         `json:"created_by"`
}

// metadata and state maps are schema-less, so those bodies bind through gin
// and the zog schema validates the bound struct instead of parsing the wire
var createAssetRequestSchema = z.Struct(z.Shape{
	"ID":        z.String(),
	"Name":      z.String().Required(),
	"Category":  z.String(),
	"CreatedBy": z.String(),
})

func (rs *RestfulServer) CreateAsset(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := createAssetRequestSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	asset := &models.Asset{
		ID:        req.ID,
		TenantID:  tenantID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		Category:  models.AssetCategory(req.Category),
		Metadata:  datatypes.JSONMap(req.Metadata),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedBy: req.CreatedBy,
	}

	if err := rs.Twin.Store.CreateAsset(c.Request.Context(), asset); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (rs *RestfulServer) GetAsset(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	asset, err := rs.Twin.Store.GetAsset(c.Request.Context(), c.Param("asset_id"), tenantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

type UpdateAssetRequest struct {
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Status    string         `json:"status"`
	Metadata  map[string]any `json:"metadata"`
	Latitude  *float64       `json:"latitude"`
	Longitude *float64       `json:"longitude"`
	UpdatedBy string         `json:"updated_by"`
}

var updateAssetRequestSchema = z.Struct(z.Shape{
	"Name":      z.String(),
	"Category":  z.String(),
	"Status":    z.String(),
	"UpdatedBy": z.String(),
})

func (rs *RestfulServer) UpdateAsset(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := updateAssetRequestSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	asset := &models.Asset{
		ID:        c.Param("asset_id"),
		TenantID:  tenantID,
		Name:      req.Name,
		Category:  models.AssetCategory(req.Category),
		Status:    models.AssetStatus(req.Status),
		Metadata:  datatypes.JSONMap(req.Metadata),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		UpdatedBy: req.UpdatedBy,
	}

	if err := rs.Twin.Store.UpdateAsset(c.Request.Context(), asset); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) DeleteAsset(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	cascade := c.Query("cascade") == "true"
	err := rs.Twin.Hierarchy.DeleteAsset(c.Request.Context(), c.Param("asset_id"), tenantID, cascade)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

type MoveAssetRequest struct {
	NewParentID *string `json:"new_parent_id"`
}

// a null new_parent_id is a move to the root level, so the field stays optional
var moveAssetRequestSchema = z.Struct(z.Shape{
	"NewParentID": z.Ptr(z.String()),
})

func (rs *RestfulServer) MoveAsset(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req MoveAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := moveAssetRequestSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	err := rs.Twin.Hierarchy.MoveAsset(c.Request.Context(), c.Param("asset_id"), req.NewParentID, tenantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetChildren(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	children, err := rs.Twin.Store.GetChildren(c.Request.Context(), c.Param("asset_id"), tenantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, children)
}

func (rs *RestfulServer) GetDescendants(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	descendants, err := rs.Twin.Hierarchy.GetDescendants(c.Request.Context(), c.Param("asset_id"), tenantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, descendants)
}

func (rs *RestfulServer) GetAncestors(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	ancestors, err := rs.Twin.Hierarchy.GetAncestors(c.Request.Context(), c.Param("asset_id"), tenantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ancestors)
}

func (rs *RestfulServer) GetTree(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	maxDepth := -1
	if raw := c.Query("max_depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_depth must be an integer"})
			return
		}
		maxDepth = parsed
	}

	tree, err := rs.Twin.Query.GetTree(c.Request.Context(), c.Param("asset_id"), tenantID, maxDepth)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// ListAssets returns the tenant's roots when no filter is given, a filtered
// search otherwise.
func (rs *RestfulServer) ListAssets(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	name := c.Query("name")
	category := c.Query("category")
	status := c.Query("status")
	parentID := c.Query("parent_id")

	if name == "" && category == "" && status == "" && parentID == "" {
		roots, err := rs.Twin.Store.GetRootAssets(c.Request.Context(), tenantID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, roots)
		return
	}

	filters := models.SearchFilters{Name: name}
	if category != "" {
		cat := models.AssetCategory(category)
		filters.Category = &cat
	}
	if status != "" {
		st := models.AssetStatus(status)
		filters.Status = &st
	}
	if parentID != "" {
		filters.ParentID = &parentID
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		filters.Limit = parsed
	}

	assets, err := rs.Twin.Store.SearchAssets(c.Request.Context(), tenantID, filters)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

type UpdateStateRequest struct {
	Values   map[string]any `json:"values"`
	DeviceID string         `json:"device_id"`
}

var updateStateRequestSchema = z.Struct(z.Shape{
	"DeviceID": z.String().Required(),
})

func (rs *RestfulServer) UpdateState(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := updateStateRequestSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}
	if len(req.Values) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "values must not be empty"})
		return
	}

	values, err := models.ValuesOf(req.Values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = rs.Twin.State.UpdateState(c.Request.Context(), c.Param("asset_id"), tenantID, values, req.DeviceID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetState(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	state, err := rs.Twin.State.GetState(c.Request.Context(), c.Param("asset_id"), tenantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type BulkStatesRequest struct {
	AssetIDs []string `json:"asset_ids"`
}

var bulkStatesRequestSchema = z.Struct(z.Shape{
	"AssetIDs": z.Slice(z.String()).Min(1),
})

func (rs *RestfulServer) GetBulkStates(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req BulkStatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := bulkStatesRequestSchema.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	states, err := rs.Twin.Query.GetBulkStates(c.Request.Context(), req.AssetIDs, tenantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, states)
}

type AlarmRequest struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

var alarmRequestSchema = z.Struct(z.Shape{
	"Severity": z.String().Required(),
	"Message":  z.String().Required(),
})

func (rs *RestfulServer) OpenAlarm(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req AlarmRequest
	if err := alarmRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	alarm, err := rs.Twin.State.OpenAlarm(
		c.Request.Context(),
		c.Param("asset_id"),
		tenantID,
		models.AlarmSeverity(req.Severity),
		req.Message,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, alarm)
}

func (rs *RestfulServer) CloseAlarm(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}
	if !rs.CheckTenantLimiter(tenantID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	err := rs.Twin.State.CloseAlarm(c.Request.Context(), c.Param("alarm_id"), tenantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	tenantID, ok := rs.tenantID(c)
	if !ok {
		return
	}

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(tenantID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
