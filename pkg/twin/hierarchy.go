package twin

import (
	"context"
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/twinstack/asset-twin-service/pkg/common"
	"github.com/twinstack/asset-twin-service/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// isSelfOrDescendant reports whether candidate sits inside the subtree
// rooted at root, using the materialized paths only.
func isSelfOrDescendant(root *models.Asset, candidate *models.Asset) bool {
	if candidate.ID == root.ID {
		return true
	}
	return strings.HasPrefix(candidate.Path, root.Path+"/")
}

func (t *Twin) subtreeSize(ctx context.Context, assetID string, tenantID string) (int64, error) {
	asset, err := t.getAsset(ctx, assetID, tenantID)
	if err != nil {
		return 0, err
	}
	var descendants int64
	err = t.Db.Conn.WithContext(ctx).Model(&models.Asset{}).
		Where("tenant_id = ? AND path LIKE ?", tenantID, asset.Path+"/%").
		Count(&descendants).Error
	if err != nil {
		return 0, err
	}
	return descendants + 1, nil
}

// moveAsset re-parents an asset and rewrites Path/Level for its whole
// subtree in one transaction. All structural validation happens before any
// lock is taken or any row is touched; a mid-batch failure rolls the whole
// rewrite back.
func (t *Twin) moveAsset(ctx context.Context, assetID string, newParentID *string, tenantID string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameTwinCore,
		zap.String(common.LoggerFieldTwinCategory, common.LoggerCategoryTwinHierarchy),
	)

	asset, err := t.getAsset(ctx, assetID, tenantID)
	if err != nil {
		return err
	}

	var newParent *models.Asset
	if newParentID != nil {
		if *newParentID == assetID {
			return fmt.Errorf("asset %s cannot be its own parent: %w", assetID, ErrCycleDetected)
		}
		newParent, err = t.getAsset(ctx, *newParentID, tenantID)
		if err != nil {
			return fmt.Errorf("new parent %s: %w", *newParentID, ErrParentNotFound)
		}
		if newParent.Status == models.StatusDecommissioned {
			return fmt.Errorf("new parent %s is decommissioned: %w", newParent.ID, ErrValidation)
		}
		if isSelfOrDescendant(asset, newParent) {
			return fmt.Errorf("asset %s is an ancestor of %s: %w", assetID, newParent.ID, ErrCycleDetected)
		}
	}

	// moving to the parent it already has is a no-op
	if sameParent(asset.ParentID, newParentID) {
		return nil
	}

	// fail fast before holding any lock
	size, err := t.subtreeSize(ctx, assetID, tenantID)
	if err != nil {
		return err
	}
	if size > t.MaxSubtreeSize {
		return fmt.Errorf("subtree of %s has %d nodes, ceiling is %d: %w",
			assetID, size, t.MaxSubtreeSize, ErrSubtreeTooLarge)
	}

	// lock the moved root plus the destination ancestor chain, ascending id
	lockIDs := mapset.NewSet(assetID)
	if newParent != nil {
		for _, id := range newParent.PathIDs() {
			lockIDs.Add(id)
		}
	}
	release := t.structuralLocks.AcquireOrdered(lockIDs.ToSlice())
	defer release()

	oldParentID := asset.ParentID

	err = t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// re-read both ends under the lock; a concurrent move may have
		// shifted either chain between validation and acquisition
		var current models.Asset
		if err := tx.Where("id = ? AND tenant_id = ?", assetID, tenantID).First(&current).Error; err != nil {
			return fmt.Errorf("asset %s: %w", assetID, ErrNotFound)
		}

		newPath := "/" + current.ID
		newLevel := 0
		if newParentID != nil {
			var parent models.Asset
			if err := tx.Where("id = ? AND tenant_id = ?", *newParentID, tenantID).First(&parent).Error; err != nil {
				return fmt.Errorf("new parent %s: %w", *newParentID, ErrParentNotFound)
			}
			if isSelfOrDescendant(&current, &parent) {
				return fmt.Errorf("asset %s is an ancestor of %s: %w", assetID, parent.ID, ErrCycleDetected)
			}
			newPath = parent.Path + "/" + current.ID
			newLevel = parent.Level + 1
		}

		oldPath := current.Path
		levelShift := newLevel - current.Level
		now := time.Now()

		var descendants []models.Asset
		if err := tx.Where("tenant_id = ? AND path LIKE ?", tenantID, oldPath+"/%").
			Find(&descendants).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Asset{}).
			Where("id = ? AND tenant_id = ?", current.ID, tenantID).
			Updates(map[string]any{
				"parent_id":  newParentID,
				"path":       newPath,
				"level":      newLevel,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		for _, d := range descendants {
			if err := tx.Model(&models.Asset{}).
				Where("id = ? AND tenant_id = ?", d.ID, tenantID).
				Updates(map[string]any{
					"path":       newPath + strings.TrimPrefix(d.Path, oldPath),
					"level":      d.Level + levelShift,
					"updated_at": now,
				}).Error; err != nil {
				return err
			}
		}

		logger.Info("Moved asset subtree",
			zap.String("asset_id", assetID),
			zap.String("old_path", oldPath),
			zap.String("new_path", newPath),
			zap.Int("descendants", len(descendants)))
		return nil
	})
	if err != nil {
		return err
	}

	// the moved subtree's contributions changed homes on both chains
	if oldParentID != nil {
		if err := t.State.RecomputeChain(ctx, *oldParentID, tenantID); err != nil {
			return err
		}
	}
	if newParentID != nil {
		if err := t.State.RecomputeChain(ctx, *newParentID, tenantID); err != nil {
			return err
		}
	}
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (t *Twin) deleteAsset(ctx context.Context, assetID string, tenantID string, cascade bool) error {
	logger := common.GetLoggerWith(
		common.LoggerNameTwinCore,
		zap.String(common.LoggerFieldTwinCategory, common.LoggerCategoryTwinHierarchy),
	)

	asset, err := t.getAsset(ctx, assetID, tenantID)
	if err != nil {
		return err
	}

	var descendants []models.Asset
	if err := t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND path LIKE ?", tenantID, asset.Path+"/%").
		Find(&descendants).Error; err != nil {
		return err
	}

	if len(descendants) > 0 && !cascade {
		return fmt.Errorf("asset %s has %d descendants: %w", assetID, len(descendants), ErrHasChildren)
	}

	release := t.structuralLocks.AcquireOrdered([]string{assetID})
	defer release()

	removedIDs := append(
		[]string{assetID},
		common.Mapper(descendants, func(d models.Asset) string { return d.ID })...,
	)

	err = t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("tenant_id = ? AND id IN ?", tenantID, removedIDs).
			Delete(&models.Asset{}).Error
	})
	if err != nil {
		return err
	}

	if err := t.State.DropStates(ctx, removedIDs, tenantID); err != nil {
		return err
	}

	logger.Info("Deleted asset",
		zap.String("asset_id", assetID),
		zap.Bool("cascade", cascade),
		zap.Int("removed", len(removedIDs)))

	// removed nodes no longer contribute to the former ancestor chain
	if asset.ParentID != nil {
		return t.State.RecomputeChain(ctx, *asset.ParentID, tenantID)
	}
	return nil
}

// getAncestors returns the chain root-first; the ancestors are literally
// the elements of the asset's own path, no recursive queries.
func (t *Twin) getAncestors(ctx context.Context, assetID string, tenantID string) ([]models.Asset, error) {
	asset, err := t.getAsset(ctx, assetID, tenantID)
	if err != nil {
		return nil, err
	}

	ancestorIDs := asset.AncestorIDs()
	if len(ancestorIDs) == 0 {
		return []models.Asset{}, nil
	}

	var ancestors []models.Asset
	err = t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ancestorIDs).
		Order("level").
		Find(&ancestors).Error
	return ancestors, err
}

func (t *Twin) getDescendants(ctx context.Context, assetID string, tenantID string) ([]models.Asset, error) {
	asset, err := t.getAsset(ctx, assetID, tenantID)
	if err != nil {
		return nil, err
	}

	var descendants []models.Asset
	err = t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND path LIKE ?", tenantID, asset.Path+"/%").
		Order("path").
		Find(&descendants).Error
	return descendants, err
}

type IHierarchyImpl struct {
	twin *Twin
}

func (ih *IHierarchyImpl) MoveAsset(ctx context.Context, assetID string, newParentID *string, tenantID string) error {
	return ih.twin.moveAsset(ctx, assetID, newParentID, tenantID)
}

func (ih *IHierarchyImpl) DeleteAsset(ctx context.Context, assetID string, tenantID string, cascade bool) error {
	return ih.twin.deleteAsset(ctx, assetID, tenantID, cascade)
}

func (ih *IHierarchyImpl) GetAncestors(ctx context.Context, assetID string, tenantID string) ([]models.Asset, error) {
	return ih.twin.getAncestors(ctx, assetID, tenantID)
}

func (ih *IHierarchyImpl) GetDescendants(ctx context.Context, assetID string, tenantID string) ([]models.Asset, error) {
	return ih.twin.getDescendants(ctx, assetID, tenantID)
}

func (ih *IHierarchyImpl) SubtreeSize(ctx context.Context, assetID string, tenantID string) (int64, error) {
	return ih.twin.subtreeSize(ctx, assetID, tenantID)
}

func (t *Twin) GetIHierarchy() IHierarchy {
	return &IHierarchyImpl{twin: t}
}
