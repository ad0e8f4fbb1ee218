package twin

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twinstack/asset-twin-service/pkg/db"
	"github.com/twinstack/asset-twin-service/pkg/models"
	"github.com/twinstack/asset-twin-service/pkg/twin/mocks"
	"go.uber.org/mock/gomock"
)

func GetMockTwinWithMemorySqliteDialector(t *testing.T, useMockStore, useMockHierarchy, useMockState, useMockQuery bool) (
	*gomock.Controller,
	*Twin,
	*mocks.MockIStore,
	*mocks.MockIHierarchy,
	*mocks.MockIState,
	*mocks.MockIQuery,
) {
	ctrl := gomock.NewController(t)

	mockIStore := mocks.NewMockIStore(ctrl)
	mockIHierarchy := mocks.NewMockIHierarchy(ctrl)
	mockIState := mocks.NewMockIState(ctrl)
	mockIQuery := mocks.NewMockIQuery(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	twinInstance := New(*dbInstance)

	storeService := twinInstance.GetIStore()
	if useMockStore {
		storeService = mockIStore
	}

	hierarchyService := twinInstance.GetIHierarchy()
	if useMockHierarchy {
		hierarchyService = mockIHierarchy
	}

	stateService := twinInstance.GetIState()
	if useMockState {
		stateService = mockIState
	}

	queryService := twinInstance.GetIQuery()
	if useMockQuery {
		queryService = mockIQuery
	}

	twinInstance.WithServices(ServiceOpts{
		Store:     storeService,
		Hierarchy: hierarchyService,
		State:     stateService,
		Query:     queryService,
	})

	return ctrl, twinInstance, mockIStore, mockIHierarchy, mockIState, mockIQuery
}

func mustCreateAsset(t *testing.T, twinObj *Twin, tenantID string, name string, parentID *string) *models.Asset {
	t.Helper()
	asset := &models.Asset{
		TenantID: tenantID,
		Name:     name,
		ParentID: parentID,
		Category: models.CategoryDevice,
	}
	require.NoError(t, twinObj.Store.CreateAsset(context.Background(), asset))
	return asset
}

func mustCreateMapping(t *testing.T, twinObj *Twin, tenantID, assetID, field string, method models.AggregationMethod, rollupEnabled bool) {
	t.Helper()
	mapping := models.DataPointMapping{
		ID:            tenantID + "/" + assetID + "/" + field,
		TenantID:      tenantID,
		AssetID:       assetID,
		Field:         field,
		Aggregation:   method,
		RollupEnabled: rollupEnabled,
	}
	require.NoError(t, twinObj.Db.Conn.Create(&mapping).Error)
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
