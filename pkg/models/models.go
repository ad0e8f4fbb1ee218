package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type AssetCategory string

const (
	CategorySite      AssetCategory = "site"
	CategoryBuilding  AssetCategory = "building"
	CategoryFloor     AssetCategory = "floor"
	CategoryArea      AssetCategory = "area"
	CategoryEquipment AssetCategory = "equipment"
	CategoryDevice    AssetCategory = "device"
	CategorySensor    AssetCategory = "sensor"
)

type AssetStatus string

const (
	StatusActive         AssetStatus = "active"
	StatusInactive       AssetStatus = "inactive"
	StatusDecommissioned AssetStatus = "decommissioned"
)

var statusRank = map[AssetStatus]int{
	StatusActive:         0,
	StatusInactive:       1,
	StatusDecommissioned: 2,
}

// CanTransition reports whether the status state machine allows from -> to.
// Transitions only move forward; decommissioned is terminal.
func CanTransition(from, to AssetStatus) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

type AggregationMethod string

const (
	AggregationLast  AggregationMethod = "last"
	AggregationSum   AggregationMethod = "sum"
	AggregationAvg   AggregationMethod = "avg"
	AggregationMin   AggregationMethod = "min"
	AggregationMax   AggregationMethod = "max"
	AggregationCount AggregationMethod = "count"
)

type AlarmSeverity string

const (
	SeverityWarning  AlarmSeverity = "warning"
	SeverityCritical AlarmSeverity = "critical"
)

type AlarmStatus string

const (
	AlarmOk       AlarmStatus = "ok"
	AlarmWarning  AlarmStatus = "warning"
	AlarmCritical AlarmStatus = "critical"
)

// Asset is one node of the per-tenant hierarchy. Path is the materialized
// ancestor chain root-to-self, ids joined with "/" and a leading "/", so
// descendant scans are a single prefix query on (tenant_id, path).
type Asset struct {
	ID        string  `gorm:"primaryKey"`
	TenantID  string  `gorm:"primaryKey;index:idx_assets_tenant_path,priority:1"`
	ParentID  *string `gorm:"index"`
	Name      string
	Category  AssetCategory `gorm:"type:varchar(20)"`
	Path      string        `gorm:"index:idx_assets_tenant_path,priority:2"`
	Level     int
	Metadata  datatypes.JSONMap
	Latitude  *float64
	Longitude *float64
	Status    AssetStatus `gorm:"type:varchar(20);check:status IN ('active','inactive','decommissioned')"`
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
	UpdatedBy string
}

// PathIDs returns the ids on the materialized path, root first, self last.
func (a *Asset) PathIDs() []string {
	trimmed := strings.TrimPrefix(a.Path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// AncestorIDs returns the ids of the ancestors only, root first.
func (a *Asset) AncestorIDs() []string {
	ids := a.PathIDs()
	if len(ids) == 0 {
		return nil
	}
	return ids[:len(ids)-1]
}

// AssetState holds the latest raw state and the running rollup aggregates
// for one asset. OwnRollups tracks only this asset's own arrivals; Rollups
// covers self plus all descendants, so structural recomputation can merge
// OwnRollups with the direct children's Rollups without a subtree scan.
type AssetState struct {
	AssetID  string `gorm:"primaryKey"`
	TenantID string `gorm:"index"`

	State             datatypes.JSONMap
	CalculatedMetrics datatypes.JSONMap
	OwnRollups        datatypes.JSONMap
	Rollups           datatypes.JSONMap

	AlarmStatus   AlarmStatus `gorm:"type:varchar(10)"`
	AlarmCount    int
	WarningCount  int
	CriticalCount int

	LastUpdateTime     time.Time
	LastUpdateDeviceID string

	Version int64
}

// DataPointMapping binds a telemetry field to an aggregation method and the
// rollup flag. Consumed read-only; the mapping UI lives outside this service.
type DataPointMapping struct {
	ID            string `gorm:"primaryKey"`
	TenantID      string `gorm:"index:idx_mappings_tenant_asset,priority:1"`
	AssetID       string `gorm:"index:idx_mappings_tenant_asset,priority:2"`
	Field         string
	Label         string
	Aggregation   AggregationMethod `gorm:"type:varchar(10)"`
	RollupEnabled bool
}

// MetricName is the rollup key for this mapping.
func (m *DataPointMapping) MetricName() string {
	if m.Label != "" {
		return m.Label
	}
	return m.Field
}

type Alarm struct {
	ID         string `gorm:"primaryKey"`
	TenantID   string `gorm:"index"`
	AssetID    string `gorm:"index"`
	Severity   AlarmSeverity `gorm:"type:varchar(10);check:severity IN ('warning','critical')"`
	Message    string
	Active     bool
	RaisedAt   time.Time
	ResolvedAt *time.Time
}

// SearchFilters narrows an asset search; zero values mean "any".
type SearchFilters struct {
	Name     string
	Category *AssetCategory
	Status   *AssetStatus
	ParentID *string
	Limit    int
}

// TreeNode is one node of a reconstructed hierarchy response.
type TreeNode struct {
	Asset    Asset       `json:"asset"`
	Children []*TreeNode `json:"children"`
}

// BulkState pairs an asset id with its state. HasData distinguishes "no
// telemetry yet" (default zero state) from an absent asset, which is simply
// not returned at all.
type BulkState struct {
	AssetID string      `json:"asset_id"`
	HasData bool        `json:"has_data"`
	State   *AssetState `json:"state"`
}
