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

func validateMetadata(metadata datatypes.JSONMap) error {
	if metadata == nil {
		return nil
	}
	if _, err := models.ValuesOf(metadata); err != nil {
		return fmt.Errorf("metadata: %v: %w", err, ErrValidation)
	}
	return nil
}

func validateLocation(latitude, longitude *float64) error {
	if latitude != nil && (*latitude < -90 || *latitude > 90) {
		return fmt.Errorf("latitude %v out of range: %w", *latitude, ErrValidation)
	}
	if longitude != nil && (*longitude < -180 || *longitude > 180) {
		return fmt.Errorf("longitude %v out of range: %w", *longitude, ErrValidation)
	}
	return nil
}

func (t *Twin) createAsset(ctx context.Context, asset *models.Asset) error {
	logger := common.GetLoggerWith(
		common.LoggerNameTwinCore,
		zap.String(common.LoggerFieldTwinCategory, common.LoggerCategoryTwinStore),
	)

	if asset.TenantID == "" {
		return fmt.Errorf("tenant id is required: %w", ErrValidation)
	}
	if asset.Name == "" {
		return fmt.Errorf("asset name is required: %w", ErrValidation)
	}
	if err := validateMetadata(asset.Metadata); err != nil {
		return err
	}
	if err := validateLocation(asset.Latitude, asset.Longitude); err != nil {
		return err
	}

	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	if asset.Status == "" {
		asset.Status = models.StatusActive
	}

	if asset.ParentID != nil {
		parent, err := t.getAsset(ctx, *asset.ParentID, asset.TenantID)
		if err != nil {
			// tenant mismatch and absence both surface as the parent missing
			return fmt.Errorf("parent %s: %w", *asset.ParentID, ErrParentNotFound)
		}
		if parent.Status == models.StatusDecommissioned {
			return fmt.Errorf("parent %s is decommissioned: %w", parent.ID, ErrValidation)
		}
		asset.Path = parent.Path + "/" + asset.ID
		asset.Level = parent.Level + 1
	} else {
		asset.Path = "/" + asset.ID
		asset.Level = 0
	}

	logger.Info("Creating asset", zap.Reflect("asset", asset))

	if err := t.Db.Conn.WithContext(ctx).Create(asset).Error; err != nil {
		return err
	}

	logger.Info("Created asset", zap.String("asset_id", asset.ID), zap.String("path", asset.Path))
	return nil
}

func (t *Twin) getAsset(ctx context.Context, assetID string, tenantID string) (*models.Asset, error) {
	var asset models.Asset
	err := t.Db.Conn.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", assetID, tenantID).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("asset %s: %w", assetID, ErrNotFound)
		}
		return nil, err
	}
	return &asset, nil
}

// updateAsset changes non-structural fields only. ParentID, Path and Level
// moves belong to the hierarchy manager.
func (t *Twin) updateAsset(ctx context.Context, asset *models.Asset) error {
	logger := common.GetLoggerWith(
		common.LoggerNameTwinCore,
		zap.String(common.LoggerFieldTwinCategory, common.LoggerCategoryTwinStore),
	)

	existing, err := t.getAsset(ctx, asset.ID, asset.TenantID)
	if err != nil {
		return err
	}

	if asset.Path != "" && asset.Path != existing.Path {
		return fmt.Errorf("path is not updatable: %w", ErrValidation)
	}
	if asset.Level != 0 && asset.Level != existing.Level {
		return fmt.Errorf("level is not updatable: %w", ErrValidation)
	}
	if asset.ParentID != nil && (existing.ParentID == nil || *asset.ParentID != *existing.ParentID) {
		return fmt.Errorf("parent is not updatable, use MoveAsset: %w", ErrValidation)
	}
	if err := validateMetadata(asset.Metadata); err != nil {
		return err
	}
	if err := validateLocation(asset.Latitude, asset.Longitude); err != nil {
		return err
	}

	updates := map[string]any{
		"updated_at": time.Now(),
	}
	if asset.Name != "" {
		updates["name"] = asset.Name
	}
	if asset.Category != "" {
		updates["category"] = asset.Category
	}
	if asset.Metadata != nil {
		updates["metadata"] = asset.Metadata
	}
	if asset.Latitude != nil {
		updates["latitude"] = *asset.Latitude
	}
	if asset.Longitude != nil {
		updates["longitude"] = *asset.Longitude
	}
	if asset.UpdatedBy != "" {
		updates["updated_by"] = asset.UpdatedBy
	}
	if asset.Status != "" && asset.Status != existing.Status {
		if !models.CanTransition(existing.Status, asset.Status) {
			return fmt.Errorf("status %s -> %s not allowed: %w", existing.Status, asset.Status, ErrValidation)
		}
		updates["status"] = asset.Status
	}

	err = t.Db.Conn.WithContext(ctx).Model(&models.Asset{}).
		Where("id = ? AND tenant_id = ?", asset.ID, asset.TenantID).
		Updates(updates).Error
	if err != nil {
		return err
	}

	logger.Info("Updated asset", zap.String("asset_id", asset.ID))
	return nil
}

func (t *Twin) getChildren(ctx context.Context, assetID string, tenantID string) ([]models.Asset, error) {
	if _, err := t.getAsset(ctx, assetID, tenantID); err != nil {
		return nil, err
	}
	var children []models.Asset
	err := t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND parent_id = ?", tenantID, assetID).
		Order("path").
		Find(&children).Error
	return children, err
}

func (t *Twin) getRootAssets(ctx context.Context, tenantID string) ([]models.Asset, error) {
	var roots []models.Asset
	err := t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND parent_id IS NULL", tenantID).
		Order("path").
		Find(&roots).Error
	return roots, err
}

func (t *Twin) searchAssets(ctx context.Context, tenantID string, filters models.SearchFilters) ([]models.Asset, error) {
	query := t.Db.Conn.WithContext(ctx).Where("tenant_id = ?", tenantID)

	if filters.Name != "" {
		query = query.Where("name LIKE ?", "%"+filters.Name+"%")
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.ParentID != nil {
		query = query.Where("parent_id = ?", *filters.ParentID)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var assets []models.Asset
	err := query.Order("path").Find(&assets).Error
	return assets, err
}

type IStoreImpl struct {
	twin *Twin
}

func (is *IStoreImpl) CreateAsset(ctx context.Context, asset *models.Asset) error {
	return is.twin.createAsset(ctx, asset)
}

func (is *IStoreImpl) GetAsset(ctx context.Context, assetID string, tenantID string) (*models.Asset, error) {
	return is.twin.getAsset(ctx, assetID, tenantID)
}

func (is *IStoreImpl) UpdateAsset(ctx context.Context, asset *models.Asset) error {
	return is.twin.updateAsset(ctx, asset)
}

func (is *IStoreImpl) GetChildren(ctx context.Context, assetID string, tenantID string) ([]models.Asset, error) {
	return is.twin.getChildren(ctx, assetID, tenantID)
}

func (is *IStoreImpl) GetRootAssets(ctx context.Context, tenantID string) ([]models.Asset, error) {
	return is.twin.getRootAssets(ctx, tenantID)
}

func (is *IStoreImpl) SearchAssets(ctx context.Context, tenantID string, filters models.SearchFilters) ([]models.Asset, error) {
	return is.twin.searchAssets(ctx, tenantID, filters)
}

func (t *Twin) GetIStore() IStore {
	return &IStoreImpl{twin: t}
}
