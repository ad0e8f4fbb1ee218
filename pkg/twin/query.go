package twin

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/twinstack/asset-twin-service/pkg/common"
	"github.com/twinstack/asset-twin-service/pkg/models"
)

// getTree loads the subtree with one path-prefix range read bounded by
// maxDepth and rebuilds the nesting in memory. Never one query per level.
func (t *Twin) getTree(ctx context.Context, rootID string, tenantID string, maxDepth int) (*models.TreeNode, error) {
	root, err := t.getAsset(ctx, rootID, tenantID)
	if err != nil {
		return nil, err
	}

	query := t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND (id = ? OR path LIKE ?)", tenantID, rootID, root.Path+"/%")
	if maxDepth >= 0 {
		query = query.Where("level <= ?", root.Level+maxDepth)
	}

	var rows []models.Asset
	if err := query.Order("path").Limit(t.MaxTreeResults + 1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) > t.MaxTreeResults {
		return nil, fmt.Errorf("tree under %s exceeds %d nodes: %w", rootID, t.MaxTreeResults, ErrSubtreeTooLarge)
	}

	nodes := make(map[string]*models.TreeNode, len(rows))
	included := mapset.NewSet[string]()
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		nodes[row.ID] = &models.TreeNode{Asset: row}
		included.Add(row.ID)
	}

	for _, row := range rows {
		if row.ID == rootID || row.ParentID == nil {
			continue
		}
		if !included.Contains(*row.ParentID) {
			// a parent beyond maxDepth means the row itself is out of
			// bounds too; the level filter already excluded it
			continue
		}
		parent := nodes[*row.ParentID]
		parent.Children = append(parent.Children, nodes[row.ID])
	}

	return nodes[rootID], nil
}

// getBulkStates batches the asset and state lookups; assets the tenant does
// not own are omitted, assets without telemetry get a default zero state.
func (t *Twin) getBulkStates(ctx context.Context, assetIDs []string, tenantID string) ([]models.BulkState, error) {
	if len(assetIDs) == 0 {
		return []models.BulkState{}, nil
	}

	var assets []models.Asset
	err := t.Db.Conn.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, assetIDs).
		Find(&assets).Error
	if err != nil {
		return nil, err
	}

	existing := common.Mapper(assets, func(a models.Asset) string { return a.ID })

	var states []models.AssetState
	if len(existing) > 0 {
		err = t.Db.Conn.WithContext(ctx).
			Where("tenant_id = ? AND asset_id IN ?", tenantID, existing).
			Find(&states).Error
		if err != nil {
			return nil, err
		}
	}

	byAsset := make(map[string]*models.AssetState, len(states))
	for i := range states {
		byAsset[states[i].AssetID] = &states[i]
	}

	results := make([]models.BulkState, 0, len(assets))
	for _, a := range assets {
		if state, ok := byAsset[a.ID]; ok {
			results = append(results, models.BulkState{AssetID: a.ID, HasData: true, State: state})
			continue
		}
		results = append(results, models.BulkState{AssetID: a.ID, HasData: false, State: newAssetState(a.ID, tenantID)})
	}
	return results, nil
}

type IQueryImpl struct {
	twin *Twin
}

func (iq *IQueryImpl) GetTree(ctx context.Context, rootID string, tenantID string, maxDepth int) (*models.TreeNode, error) {
	return iq.twin.getTree(ctx, rootID, tenantID, maxDepth)
}

func (iq *IQueryImpl) GetBulkStates(ctx context.Context, assetIDs []string, tenantID string) ([]models.BulkState, error) {
	return iq.twin.getBulkStates(ctx, assetIDs, tenantID)
}

func (t *Twin) GetIQuery() IQuery {
	return &IQueryImpl{twin: t}
}
