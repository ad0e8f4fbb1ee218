package twin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twinstack/asset-twin-service/pkg/common"
	"github.com/twinstack/asset-twin-service/pkg/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// rollupDelta is the contribution one leaf update makes to a single metric,
// folded into every ancestor on the chain.
type rollupDelta struct {
	metric string
	method models.AggregationMethod
	value  float64
}

func newAssetState(assetID string, tenantID string) *models.AssetState {
	return &models.AssetState{
		AssetID:           assetID,
		TenantID:          tenantID,
		State:             datatypes.JSONMap{},
		CalculatedMetrics: datatypes.JSONMap{},
		OwnRollups:        datatypes.JSONMap{},
		Rollups:           datatypes.JSONMap{},
		AlarmStatus:       models.AlarmOk,
	}
}

// loadOrInitState returns the stored state or a fresh one; AssetState rows
// are created lazily, on the first update that touches them.
func (t *Twin) loadOrInitState(ctx context.Context, assetID string, tenantID string) (*models.AssetState, bool, error) {
	var state models.AssetState
	err := t.Db.Conn.WithContext(ctx).
		Where("asset_id = ? AND tenant_id = ?", assetID, tenantID).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAssetState(assetID, tenantID), true, nil
		}
		return nil, false, err
	}
	if state.State == nil {
		state.State = datatypes.JSONMap{}
	}
	if state.CalculatedMetrics == nil {
		state.CalculatedMetrics = datatypes.JSONMap{}
	}
	if state.OwnRollups == nil {
		state.OwnRollups = datatypes.JSONMap{}
	}
	if state.Rollups == nil {
		state.Rollups = datatypes.JSONMap{}
	}
	return &state, false, nil
}

// saveState persists under optimistic concurrency: the row version must
// still match the one loaded, otherwise ErrConcurrentModification.
func (t *Twin) saveState(ctx context.Context, state *models.AssetState, isNew bool) error {
	if isNew {
		state.Version = 1
		return t.Db.Conn.WithContext(ctx).Create(state).Error
	}

	loadedVersion := state.Version
	state.Version = loadedVersion + 1

	res := t.Db.Conn.WithContext(ctx).Model(&models.AssetState{}).
		Where("asset_id = ? AND version = ?", state.AssetID, loadedVersion).
		Updates(map[string]any{
			"state":                 state.State,
			"calculated_metrics":    state.CalculatedMetrics,
			"own_rollups":           state.OwnRollups,
			"rollups":               state.Rollups,
			"alarm_status":          state.AlarmStatus,
			"alarm_count":           state.AlarmCount,
			"warning_count":         state.WarningCount,
			"critical_count":        state.CriticalCount,
			"last_update_time":      state.LastUpdateTime,
			"last_update_device_id": state.LastUpdateDeviceID,
			"version":               state.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("state of asset %s: %w", state.AssetID, ErrConcurrentModification)
	}
	return nil
}

func (t *Twin) loadMappings(ctx context.Context, assetID string, tenantID string) (map[string]models.DataPointMapping, error) {
	var mappings []models.DataPointMapping
	err := t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND asset_id = ?", tenantID, assetID).
		Find(&mappings).Error
	if err != nil {
		return nil, err
	}
	byField := make(map[string]models.DataPointMapping, len(mappings))
	for _, m := range mappings {
		byField[m.Field] = m
	}
	return byField, nil
}

func numericMethod(method models.AggregationMethod) bool {
	switch method {
	case models.AggregationSum, models.AggregationAvg, models.AggregationMin, models.AggregationMax:
		return true
	default:
		return false
	}
}

// updateState merges one telemetry arrival into the leaf's raw state and
// folds the rollup-enabled fields into every ancestor's running aggregates.
// Cost is O(depth): the chain is walked once, siblings are never touched.
func (t *Twin) updateState(ctx context.Context, assetID string, tenantID string, values map[string]models.Value, deviceID string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameTwinCore,
		zap.String(common.LoggerFieldTwinCategory, common.LoggerCategoryTwinState),
	)

	asset, err := t.getAsset(ctx, assetID, tenantID)
	if err != nil {
		return err
	}

	mappings, err := t.loadMappings(ctx, assetID, tenantID)
	if err != nil {
		return err
	}

	var deltas []rollupDelta

	applyLeaf := func() error {
		lock := t.stateLocks.Get(assetID)
		lock.Lock()
		defer lock.Unlock()

		state, isNew, err := t.loadOrInitState(ctx, assetID, tenantID)
		if err != nil {
			return err
		}

		for field, value := range values {
			method := models.AggregationLast
			metric := field
			rollupEnabled := false
			if m, ok := mappings[field]; ok {
				method = m.Aggregation
				metric = m.MetricName()
				rollupEnabled = m.RollupEnabled
			}

			num, isNum := value.Float64()
			if numericMethod(method) && !isNum {
				return fmt.Errorf("field %s needs a numeric value for %s aggregation: %w", field, method, ErrValidation)
			}

			switch method {
			case models.AggregationSum:
				state.State[field] = jsonNumber(state.State[field]) + num
			case models.AggregationCount:
				state.State[field] = jsonNumber(state.State[field]) + 1
			default:
				state.State[field] = value.Any()
			}

			if isNum || method == models.AggregationCount {
				own := rollupFrom(state.OwnRollups, metric, method)
				own.fold(num)
				own.store(state.OwnRollups, metric)

				agg := rollupFrom(state.Rollups, metric, method)
				agg.fold(num)
				agg.store(state.Rollups, metric)
				state.CalculatedMetrics[metric] = agg.calculated()

				// decommissioned assets keep their own state but stop
				// contributing upward
				if rollupEnabled && asset.Status != models.StatusDecommissioned {
					deltas = append(deltas, rollupDelta{metric: metric, method: method, value: num})
				}
			}
		}

		state.LastUpdateTime = time.Now()
		state.LastUpdateDeviceID = deviceID

		return t.saveState(ctx, state, isNew)
	}
	if err := applyLeaf(); err != nil {
		return err
	}

	logger.Info("Updated state",
		zap.String("asset_id", assetID),
		zap.String("device_id", deviceID),
		zap.Int("fields", len(values)),
		zap.Int("rollup_deltas", len(deltas)))

	if len(deltas) == 0 {
		return nil
	}

	ancestors, err := t.Hierarchy.GetAncestors(ctx, assetID, tenantID)
	if err != nil {
		return err
	}

	// child before parent: walk the chain deepest-first, one stripe at a time
	for i := len(ancestors) - 1; i >= 0; i-- {
		ancestor := ancestors[i]
		if ancestor.Status == models.StatusDecommissioned {
			continue
		}
		if err := t.foldIntoNode(ctx, ancestor.ID, tenantID, deltas); err != nil {
			return err
		}
	}
	return nil
}

// foldIntoNode applies the per-update deltas to one ancestor's subtree
// aggregates under its own stripe lock.
func (t *Twin) foldIntoNode(ctx context.Context, assetID string, tenantID string, deltas []rollupDelta) error {
	lock := t.stateLocks.Get(assetID)
	lock.Lock()
	defer lock.Unlock()

	state, isNew, err := t.loadOrInitState(ctx, assetID, tenantID)
	if err != nil {
		return err
	}

	for _, d := range deltas {
		agg := rollupFrom(state.Rollups, d.metric, d.method)
		agg.fold(d.value)
		agg.store(state.Rollups, d.metric)
		state.CalculatedMetrics[d.metric] = agg.calculated()
	}

	return t.saveState(ctx, state, isNew)
}

func (t *Twin) getState(ctx context.Context, assetID string, tenantID string) (*models.AssetState, error) {
	if _, err := t.getAsset(ctx, assetID, tenantID); err != nil {
		return nil, err
	}
	state, isNew, err := t.loadOrInitState(ctx, assetID, tenantID)
	if err != nil {
		return nil, err
	}
	_ = isNew // a fresh zero state is the documented "no data" answer
	return state, nil
}

func (t *Twin) openAlarm(ctx context.Context, assetID string, tenantID string, severity models.AlarmSeverity, message string) (*models.Alarm, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameTwinCore,
		zap.String(common.LoggerFieldTwinCategory, common.LoggerCategoryTwinState),
	)

	if severity != models.SeverityWarning && severity != models.SeverityCritical {
		return nil, fmt.Errorf("unknown severity %q: %w", severity, ErrValidation)
	}
	if _, err := t.getAsset(ctx, assetID, tenantID); err != nil {
		return nil, err
	}

	alarm := &models.Alarm{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		AssetID:  assetID,
		Severity: severity,
		Message:  message,
		Active:   true,
		RaisedAt: time.Now(),
	}
	if err := t.Db.Conn.WithContext(ctx).Create(alarm).Error; err != nil {
		return nil, err
	}

	logger.Info("Alarm opened", zap.Reflect("alarm", alarm))

	if err := t.propagateAlarmDelta(ctx, assetID, tenantID, severity, +1); err != nil {
		return nil, err
	}
	return alarm, nil
}

func (t *Twin) closeAlarm(ctx context.Context, alarmID string, tenantID string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameTwinCore,
		zap.String(common.LoggerFieldTwinCategory, common.LoggerCategoryTwinState),
	)

	var alarm models.Alarm
	err := t.Db.Conn.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", alarmID, tenantID).
		First(&alarm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("alarm %s: %w", alarmID, ErrNotFound)
		}
		return err
	}
	if !alarm.Active {
		return fmt.Errorf("alarm %s already resolved: %w", alarmID, ErrValidation)
	}

	now := time.Now()
	err = t.Db.Conn.WithContext(ctx).Model(&models.Alarm{}).
		Where("id = ? AND tenant_id = ?", alarmID, tenantID).
		Updates(map[string]any{"active": false, "resolved_at": now}).Error
	if err != nil {
		return err
	}

	logger.Info("Alarm resolved", zap.String("alarm_id", alarmID), zap.String("asset_id", alarm.AssetID))

	return t.propagateAlarmDelta(ctx, alarm.AssetID, tenantID, alarm.Severity, -1)
}

// propagateAlarmDelta adjusts the per-severity counters by exactly one per
// event at the asset and every ancestor; AlarmStatus is the max severity
// with a nonzero counter.
func (t *Twin) propagateAlarmDelta(ctx context.Context, assetID string, tenantID string, severity models.AlarmSeverity, delta int) error {
	if err := t.adjustAlarmCounters(ctx, assetID, tenantID, severity, delta); err != nil {
		return err
	}

	ancestors, err := t.Hierarchy.GetAncestors(ctx, assetID, tenantID)
	if err != nil {
		return err
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if err := t.adjustAlarmCounters(ctx, ancestors[i].ID, tenantID, severity, delta); err != nil {
			return err
		}
	}
	return nil
}

func (t *Twin) adjustAlarmCounters(ctx context.Context, assetID string, tenantID string, severity models.AlarmSeverity, delta int) error {
	lock := t.stateLocks.Get(assetID)
	lock.Lock()
	defer lock.Unlock()

	state, isNew, err := t.loadOrInitState(ctx, assetID, tenantID)
	if err != nil {
		return err
	}

	switch severity {
	case models.SeverityCritical:
		state.CriticalCount += delta
		if state.CriticalCount < 0 {
			state.CriticalCount = 0
		}
	default:
		state.WarningCount += delta
		if state.WarningCount < 0 {
			state.WarningCount = 0
		}
	}
	state.AlarmCount = state.WarningCount + state.CriticalCount
	state.AlarmStatus = alarmStatusFor(state.WarningCount, state.CriticalCount)

	return t.saveState(ctx, state, isNew)
}

func alarmStatusFor(warningCount, criticalCount int) models.AlarmStatus {
	switch {
	case criticalCount > 0:
		return models.AlarmCritical
	case warningCount > 0:
		return models.AlarmWarning
	default:
		return models.AlarmOk
	}
}

// recomputeChain re-derives the subtree aggregates and alarm counters for
// every node from fromAssetID up to its root, each from its own arrivals
// plus the direct children actually present. This is the only non-
// incremental path and it runs only after structural changes.
func (t *Twin) recomputeChain(ctx context.Context, fromAssetID string, tenantID string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameTwinCore,
		zap.String(common.LoggerFieldTwinCategory, common.LoggerCategoryTwinState),
	)

	node, err := t.getAsset(ctx, fromAssetID, tenantID)
	if err != nil {
		return err
	}

	for {
		if err := t.recomputeNode(ctx, node, tenantID); err != nil {
			return err
		}
		if node.ParentID == nil {
			break
		}
		node, err = t.getAsset(ctx, *node.ParentID, tenantID)
		if err != nil {
			return err
		}
	}

	logger.Info("Recomputed rollup chain", zap.String("from_asset_id", fromAssetID))
	return nil
}

func (t *Twin) recomputeNode(ctx context.Context, node *models.Asset, tenantID string) error {
	var children []models.Asset
	err := t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND parent_id = ?", tenantID, node.ID).
		Find(&children).Error
	if err != nil {
		return err
	}

	childIDs := common.Mapper(children, func(c models.Asset) string { return c.ID })

	var childStates []models.AssetState
	if len(childIDs) > 0 {
		err = t.Db.Conn.WithContext(ctx).
			Where("tenant_id = ? AND asset_id IN ?", tenantID, childIDs).
			Find(&childStates).Error
		if err != nil {
			return err
		}
	}
	stateByChild := make(map[string]*models.AssetState, len(childStates))
	for i := range childStates {
		stateByChild[childStates[i].AssetID] = &childStates[i]
	}

	// A decommissioned node aggregates nothing beyond its own arrivals: the
	// incremental fold never lands on it, so its Rollups column carries no
	// descendant contributions. Its live descendants still roll up to the
	// nodes above it, so a decommissioned child forwards its subtree
	// aggregates here while withholding its own.
	var childRollups []datatypes.JSONMap
	if node.Status != models.StatusDecommissioned {
		for _, c := range children {
			if c.Status == models.StatusDecommissioned {
				forwarded, err := t.forwardedRollups(ctx, c.ID, tenantID)
				if err != nil {
					return err
				}
				childRollups = append(childRollups, forwarded...)
				continue
			}
			if cs, ok := stateByChild[c.ID]; ok {
				childRollups = append(childRollups, cs.Rollups)
			}
		}
	}

	var ownWarnings, ownCriticals int64
	err = t.Db.Conn.WithContext(ctx).Model(&models.Alarm{}).
		Where("tenant_id = ? AND asset_id = ? AND active = ? AND severity = ?",
			tenantID, node.ID, true, models.SeverityWarning).
		Count(&ownWarnings).Error
	if err != nil {
		return err
	}
	err = t.Db.Conn.WithContext(ctx).Model(&models.Alarm{}).
		Where("tenant_id = ? AND asset_id = ? AND active = ? AND severity = ?",
			tenantID, node.ID, true, models.SeverityCritical).
		Count(&ownCriticals).Error
	if err != nil {
		return err
	}

	lock := t.stateLocks.Get(node.ID)
	lock.Lock()
	defer lock.Unlock()

	state, isNew, err := t.loadOrInitState(ctx, node.ID, tenantID)
	if err != nil {
		return err
	}

	// alarm counters ignore status: they climb through decommissioned nodes
	// on the incremental path too, so every child's counters count here
	warnings := common.Reducer(childStates, func(acc int, cs models.AssetState) int {
		return acc + cs.WarningCount
	}, int(ownWarnings))
	criticals := common.Reducer(childStates, func(acc int, cs models.AssetState) int {
		return acc + cs.CriticalCount
	}, int(ownCriticals))

	state.Rollups = mergeRollupMaps(state.OwnRollups, childRollups)
	state.CalculatedMetrics = datatypes.JSONMap{}
	for metric := range state.Rollups {
		r := rollupFrom(state.Rollups, metric, "")
		state.CalculatedMetrics[metric] = r.calculated()
	}
	state.WarningCount = warnings
	state.CriticalCount = criticals
	state.AlarmCount = warnings + criticals
	state.AlarmStatus = alarmStatusFor(warnings, criticals)

	// nothing ever contributed here, no need to materialize a row
	if isNew && len(state.Rollups) == 0 && state.AlarmCount == 0 {
		return nil
	}

	return t.saveState(ctx, state, isNew)
}

// forwardedRollups collects what a decommissioned node passes upward: the
// Rollups of its nearest non-decommissioned descendants, found by walking
// down through any consecutive decommissioned layers.
func (t *Twin) forwardedRollups(ctx context.Context, assetID string, tenantID string) ([]datatypes.JSONMap, error) {
	var children []models.Asset
	err := t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND parent_id = ?", tenantID, assetID).
		Find(&children).Error
	if err != nil {
		return nil, err
	}

	var rollups []datatypes.JSONMap
	for _, c := range children {
		if c.Status == models.StatusDecommissioned {
			nested, err := t.forwardedRollups(ctx, c.ID, tenantID)
			if err != nil {
				return nil, err
			}
			rollups = append(rollups, nested...)
			continue
		}
		var cs models.AssetState
		err := t.Db.Conn.WithContext(ctx).
			Where("tenant_id = ? AND asset_id = ?", tenantID, c.ID).
			First(&cs).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		rollups = append(rollups, cs.Rollups)
	}
	return rollups, nil
}

func (t *Twin) dropStates(ctx context.Context, assetIDs []string, tenantID string) error {
	if len(assetIDs) == 0 {
		return nil
	}
	err := t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND asset_id IN ?", tenantID, assetIDs).
		Delete(&models.AssetState{}).Error
	if err != nil {
		return err
	}
	return t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND asset_id IN ?", tenantID, assetIDs).
		Delete(&models.Alarm{}).Error
}

type IStateImpl struct {
	twin *Twin
}

func (is *IStateImpl) UpdateState(ctx context.Context, assetID string, tenantID string, values map[string]models.Value, deviceID string) error {
	return is.twin.updateState(ctx, assetID, tenantID, values, deviceID)
}

func (is *IStateImpl) GetState(ctx context.Context, assetID string, tenantID string) (*models.AssetState, error) {
	return is.twin.getState(ctx, assetID, tenantID)
}

func (is *IStateImpl) OpenAlarm(ctx context.Context, assetID string, tenantID string, severity models.AlarmSeverity, message string) (*models.Alarm, error) {
	return is.twin.openAlarm(ctx, assetID, tenantID, severity, message)
}

func (is *IStateImpl) CloseAlarm(ctx context.Context, alarmID string, tenantID string) error {
	return is.twin.closeAlarm(ctx, alarmID, tenantID)
}

func (is *IStateImpl) RecomputeChain(ctx context.Context, fromAssetID string, tenantID string) error {
	return is.twin.recomputeChain(ctx, fromAssetID, tenantID)
}

func (is *IStateImpl) DropStates(ctx context.Context, assetIDs []string, tenantID string) error {
	return is.twin.dropStates(ctx, assetIDs, tenantID)
}

func (t *Twin) GetIState() IState {
	return &IStateImpl{twin: t}
}
