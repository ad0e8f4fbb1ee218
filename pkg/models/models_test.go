package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	// forward moves and no-ops are allowed
	assert.True(t, CanTransition(StatusActive, StatusActive))
	assert.True(t, CanTransition(StatusActive, StatusInactive))
	assert.True(t, CanTransition(StatusActive, StatusDecommissioned))
	assert.True(t, CanTransition(StatusInactive, StatusDecommissioned))

	// decommissioned is terminal, inactive cannot reactivate
	assert.False(t, CanTransition(StatusDecommissioned, StatusActive))
	assert.False(t, CanTransition(StatusDecommissioned, StatusInactive))
	assert.False(t, CanTransition(StatusInactive, StatusActive))

	// unknown statuses never transition
	assert.False(t, CanTransition("bogus", StatusActive))
	assert.False(t, CanTransition(StatusActive, "bogus"))
}

func TestAssetPathIDs(t *testing.T) {
	asset := &Asset{ID: "c", Path: "/a/b/c", Level: 2}

	assert.Equal(t, []string{"a", "b", "c"}, asset.PathIDs())
	assert.Equal(t, []string{"a", "b"}, asset.AncestorIDs())

	root := &Asset{ID: "a", Path: "/a", Level: 0}
	assert.Equal(t, []string{"a"}, root.PathIDs())
	assert.Empty(t, root.AncestorIDs())

	empty := &Asset{}
	assert.Empty(t, empty.PathIDs())
	assert.Empty(t, empty.AncestorIDs())
}

func TestDataPointMappingMetricName(t *testing.T) {
	withLabel := &DataPointMapping{Field: "t1", Label: "temperature"}
	assert.Equal(t, "temperature", withLabel.MetricName())

	withoutLabel := &DataPointMapping{Field: "t1"}
	assert.Equal(t, "t1", withoutLabel.MetricName())
}
