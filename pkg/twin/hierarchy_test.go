package twin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twinstack/asset-twin-service/pkg/common"
	"github.com/twinstack/asset-twin-service/pkg/models"
	_ "github.com/twinstack/asset-twin-service/pkg/testing"
)

func TestMoveAsset(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, twinObj, _, _, _, _ := GetMockTwinWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.NewString()

	a := mustCreateAsset(t, twinObj, tenantID, "a", nil)
	b := mustCreateAsset(t, twinObj, tenantID, "b", &a.ID)
	c := mustCreateAsset(t, twinObj, tenantID, "c", &b.ID)

	// re-parent c from b to a
	require.NoError(t, twinObj.Hierarchy.MoveAsset(ctx, c.ID, &a.ID, tenantID))

	moved, err := twinObj.Store.GetAsset(ctx, c.ID, tenantID)
	require.NoError(t, err)
	assert.Equal(t, a.Path+"/"+c.ID, moved.Path)
	assert.Equal(t, 1, moved.Level)
	assert.Equal(t, a.ID, *moved.ParentID)

	// b keeps its place but loses the subtree
	underB, err := twinObj.Hierarchy.GetDescendants(ctx, b.ID, tenantID)
	require.NoError(t, err)
	assert.Empty(t, underB)

	underA, err := twinObj.Hierarchy.GetDescendants(ctx, a.ID, tenantID)
	require.NoError(t, err)
	assert.Len(t, underA, 2)
}

func TestMoveAsset_SubtreePathsRewritten(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, twinObj, _, _, _, _ := GetMockTwinWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.NewString()

	root := mustCreateAsset(t, twinObj, tenantID, "root", nil)
	mid := mustCreateAsset(t, twinObj, tenantID, "mid", &root.ID)
	leaf1 := mustCreateAsset(t, twinObj, tenantID, "leaf-1", &mid.ID)
	leaf2 := mustCreateAsset(t, twinObj, tenantID, "leaf-2", &mid.ID)
	deep := mustCreateAsset(t, twinObj, tenantID, "deep", &leaf1.ID)

	// mid becomes a new root; every node under it shifts up two levels
	require.NoError(t, twinObj.Hierarchy.MoveAsset(ctx, mid.ID, nil, tenantID))

	expected := map[string]struct {
		path  string
		level int
	}{
		mid.ID:   {"/" + mid.ID, 0},
		leaf1.ID: {"/" + mid.ID + "/" + leaf1.ID, 1},
		leaf2.ID: {"/" + mid.ID + "/" + leaf2.ID, 1},
		deep.ID:  {"/" + mid.ID + "/" + leaf1.ID + "/" + deep.ID, 2},
	}
	for id, want := range expected {
		saved, err := twinObj.Store.GetAsset(ctx, id, tenantID)
		require.NoError(t, err)
		assert.Equal(t, want.path, saved.Path)
		assert.Equal(t, want.level, saved.Level)
	}

	// the old root keeps only itself
	underRoot, err := twinObj.Hierarchy.GetDescendants(ctx, root.ID, tenantID)
	require.NoError(t, err)
	assert.Empty(t, underRoot)
}

func TestMoveAsset_CycleRejected(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, twinObj, _, _, _, _ := GetMockTwinWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.NewString()

	a := mustCreateAsset(t, twinObj, tenantID, "a", nil)
	b := mustCreateAsset(t, twinObj, tenantID, "b", &a.ID)
	c := mustCreateAsset(t, twinObj, tenantID, "c", &b.ID)

	before := map[string]string{}
	for _, id := range []string{a.ID, b.ID, c.ID} {
		saved, err := twinObj.Store.GetAsset(ctx, id, tenantID)
		require.NoError(t, err)
		before[id] = saved.Path
	}

	// a under its own descendant
	err := twinObj.Hierarchy.MoveAsset(ctx, a.ID, &c.ID, tenantID)
	assert.ErrorIs(t, err, ErrCycleDetected)

	// self-parent
	err = twinObj.Hierarchy.MoveAsset(ctx, b.ID, &b.ID, tenantID)
	assert.ErrorIs(t, err, ErrCycleDetected)

	// a rejected move leaves the tree untouched
	for id, path := range before {
		saved, err := twinObj.Store.GetAsset(ctx, id, tenantID)
		require.NoError(t, err)
		assert.Equal(t, path, saved.Path)
	}
}

func TestMoveAsset_EdgeCases(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, twinObj, _, _, _, _ := GetMockTwinWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.NewString()

	a := mustCreateAsset(t, twinObj, tenantID, "a", nil)
	b := mustCreateAsset(t, twinObj, tenantID, "b", &a.ID)

	var err error

	missing := uuid.NewString()
	err = twinObj.Hierarchy.MoveAsset(ctx, missing, &a.ID, tenantID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = twinObj.Hierarchy.MoveAsset(ctx, b.ID, &missing, tenantID)
	assert.ErrorIs(t, err, ErrParentNotFound)

	// destination in another tenant looks missing
	foreign := mustCreateAsset(t, twinObj, uuid.NewString(), "foreign", nil)
	err = twinObj.Hierarchy.MoveAsset(ctx, b.ID, &foreign.ID, tenantID)
	assert.ErrorIs(t, err, ErrParentNotFound)

	// decommissioned destination refuses the subtree
	retired := mustCreateAsset(t, twinObj, tenantID, "retired", nil)
	require.NoError(t, twinObj.Store.UpdateAsset(ctx, &models.Asset{
		ID:       retired.ID,
		TenantID: tenantID,
		Status:   models.StatusDecommissioned,
	}))
	err = twinObj.Hierarchy.MoveAsset(ctx, b.ID, &retired.ID, tenantID)
	assert.ErrorIs(t, err, ErrValidation)

	// moving to the current parent is a no-op
	err = twinObj.Hierarchy.MoveAsset(ctx, b.ID, &a.ID, tenantID)
	assert.NoError(t, err)
}

func TestMoveAsset_SubtreeTooLarge(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, twinObj, _, _, _, _ := GetMockTwinWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.NewString()

	twinObj.MaxSubtreeSize = 2

	a := mustCreateAsset(t, twinObj, tenantID, "a", nil)
	b := mustCreateAsset(t, twinObj, tenantID, "b", &a.ID)
	mustCreateAsset(t, twinObj, tenantID, "c", &b.ID)
	mustCreateAsset(t, twinObj, tenantID, "d", &b.ID)

	// b carries three nodes, over the ceiling of two
	err := twinObj.Hierarchy.MoveAsset(ctx, b.ID, nil, tenantID)
	assert.ErrorIs(t, err, ErrSubtreeTooLarge)

	size, err := twinObj.Hierarchy.SubtreeSize(ctx, b.ID, tenantID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, size)
}

func TestMoveAsset_RollupsFollowTheSubtree(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, twinObj, _, _, _, _ := GetMockTwinWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.NewString()

	a := mustCreateAsset(t, twinObj, tenantID, "a", nil)
	b := mustCreateAsset(t, twinObj, tenantID, "b", &a.ID)
	c := mustCreateAsset(t, twinObj, tenantID, "c", &b.ID)
	mustCreateMapping(t, twinObj, tenantID, c.ID, "temp", models.AggregationSum, true)

	err := twinObj.State.UpdateState(ctx, c.ID, tenantID, map[string]models.Value{
		"temp": models.NumberValue(10),
	}, "device-1")
	require.NoError(t, err)

	bState, err := twinObj.State.GetState(ctx, b.ID, tenantID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, jsonNumber(bState.CalculatedMetrics["temp"]))

	// c leaves b's subtree and hangs directly under a
	require.NoError(t, twinObj.Hierarchy.MoveAsset(ctx, c.ID, &a.ID, tenantID))

	bState, err = twinObj.State.GetState(ctx, b.ID, tenantID)
	require.NoError(t, err)
	assert.NotContains(t, bState.CalculatedMetrics, "temp")

	aState, err := twinObj.State.GetState(ctx, a.ID, tenantID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, jsonNumber(aState.CalculatedMetrics["temp"]))
}

func TestDeleteAsset(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, twinObj, _, _, _, _ := GetMockTwinWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.NewString()

	root := mustCreateAsset(t, twinObj, tenantID, "root", nil)
	branch := mustCreateAsset(t, twinObj, tenantID, "branch", &root.ID)
	leaf := mustCreateAsset(t, twinObj, tenantID, "leaf", &branch.ID)
	sibling := mustCreateAsset(t, twinObj, tenantID, "sibling", &root.ID)

	var err error

	// non-cascade on a node with descendants
	err = twinObj.Hierarchy.DeleteAsset(ctx, branch.ID, tenantID, false)
	assert.ErrorIs(t, err, ErrHasChildren)

	// leaf deletes fine without cascade
	require.NoError(t, twinObj.Hierarchy.DeleteAsset(ctx, leaf.ID, tenantID, false))
	_, err = twinObj.Store.GetAsset(ctx, leaf.ID, tenantID)
	assert.ErrorIs(t, err, ErrNotFound)

	// cascade removes the whole remaining subtree
	extra := mustCreateAsset(t, twinObj, tenantID, "extra", &branch.ID)
	require.NoError(t, twinObj.Hierarchy.DeleteAsset(ctx, branch.ID, tenantID, true))
	for _, id := range []string{branch.ID, extra.ID} {
		_, err = twinObj.Store.GetAsset(ctx, id, tenantID)
		assert.ErrorIs(t, err, ErrNotFound)
	}

	// the sibling survives
	_, err = twinObj.Store.GetAsset(ctx, sibling.ID, tenantID)
	assert.NoError(t, err)

	// unknown asset
	err = twinObj.Hierarchy.DeleteAsset(ctx, uuid.NewString(), tenantID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAsset_DropsStatesAndContributions(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, twinObj, _, _, _, _ := GetMockTwinWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.NewString()

	root := mustCreateAsset(t, twinObj, tenantID, "root", nil)
	leaf := mustCreateAsset(t, twinObj, tenantID, "leaf", &root.ID)
	mustCreateMapping(t, twinObj, tenantID, leaf.ID, "temp", models.AggregationSum, true)

	err := twinObj.State.UpdateState(ctx, leaf.ID, tenantID, map[string]models.Value{
		"temp": models.NumberValue(7),
	}, "device-1")
	require.NoError(t, err)

	rootState, err := twinObj.State.GetState(ctx, root.ID, tenantID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, jsonNumber(rootState.CalculatedMetrics["temp"]))

	require.NoError(t, twinObj.Hierarchy.DeleteAsset(ctx, leaf.ID, tenantID, false))

	// state rows of removed assets are gone
	var count int64
	err = twinObj.Db.Conn.Model(&models.AssetState{}).
		Where("tenant_id = ? AND asset_id = ?", tenantID, leaf.ID).
		Count(&count).Error
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// and the former ancestor chain no longer carries the contribution
	rootState, err = twinObj.State.GetState(ctx, root.ID, tenantID)
	require.NoError(t, err)
	assert.NotContains(t, rootState.CalculatedMetrics, "temp")
}

func TestGetAncestorsAndDescendants(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, twinObj, _, _, _, _ := GetMockTwinWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	ctx := context.Background()
	tenantID := uuid.NewString()

	a := mustCreateAsset(t, twinObj, tenantID, "a", nil)
	b := mustCreateAsset(t, twinObj, tenantID, "b", &a.ID)
	c := mustCreateAsset(t, twinObj, tenantID, "c", &b.ID)
	d := mustCreateAsset(t, twinObj, tenantID, "d", &c.ID)

	ancestors, err := twinObj.Hierarchy.GetAncestors(ctx, d.ID, tenantID)
	require.NoError(t, err)
	require.Len(t, ancestors, 3)
	// root first, direct parent last
	assert.Equal(t, a.ID, ancestors[0].ID)
	assert.Equal(t, b.ID, ancestors[1].ID)
	assert.Equal(t, c.ID, ancestors[2].ID)

	rootAncestors, err := twinObj.Hierarchy.GetAncestors(ctx, a.ID, tenantID)
	require.NoError(t, err)
	assert.Empty(t, rootAncestors)

	descendants, err := twinObj.Hierarchy.GetDescendants(ctx, a.ID, tenantID)
	require.NoError(t, err)
	assert.Len(t, descendants, 3)

	leafDescendants, err := twinObj.Hierarchy.GetDescendants(ctx, d.ID, tenantID)
	require.NoError(t, err)
	assert.Empty(t, leafDescendants)

	_, err = twinObj.Hierarchy.GetAncestors(ctx, d.ID, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
