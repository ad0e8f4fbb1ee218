package twin

import (
	"context"

	"github.com/twinstack/asset-twin-service/pkg/db"
	"github.com/twinstack/asset-twin-service/pkg/models"
)

const (
	DefaultMaxSubtreeSize = 10000
	DefaultMaxTreeResults = 50000
)

type IStore interface {
	CreateAsset(ctx context.Context, asset *models.Asset) error
	GetAsset(ctx context.Context, assetID string, tenantID string) (*models.Asset, error)
	UpdateAsset(ctx context.Context, asset *models.Asset) error
	GetChildren(ctx context.Context, assetID string, tenantID string) ([]models.Asset, error)
	GetRootAssets(ctx context.Context, tenantID string) ([]models.Asset, error)
	SearchAssets(ctx context.Context, tenantID string, filters models.SearchFilters) ([]models.Asset, error)
}

type IHierarchy interface {
	MoveAsset(ctx context.Context, assetID string, newParentID *string, tenantID string) error
	DeleteAsset(ctx context.Context, assetID string, tenantID string, cascade bool) error
	GetAncestors(ctx context.Context, assetID string, tenantID string) ([]models.Asset, error)
	GetDescendants(ctx context.Context, assetID string, tenantID string) ([]models.Asset, error)
	SubtreeSize(ctx context.Context, assetID string, tenantID string) (int64, error)
}

type IState interface {
	UpdateState(ctx context.Context, assetID string, tenantID string, values map[string]models.Value, deviceID string) error
	GetState(ctx context.Context, assetID string, tenantID string) (*models.AssetState, error)
	OpenAlarm(ctx context.Context, assetID string, tenantID string, severity models.AlarmSeverity, message string) (*models.Alarm, error)
	CloseAlarm(ctx context.Context, alarmID string, tenantID string) error
	RecomputeChain(ctx context.Context, fromAssetID string, tenantID string) error
	DropStates(ctx context.Context, assetIDs []string, tenantID string) error
}

type IQuery interface {
	GetTree(ctx context.Context, rootID string, tenantID string, maxDepth int) (*models.TreeNode, error)
	GetBulkStates(ctx context.Context, assetIDs []string, tenantID string) ([]models.BulkState, error)
}

// Twin is the facade over the asset store, hierarchy manager, rollup state
// engine and query engine. Cross-component calls always go through the
// interface fields so any of them can be swapped for a test double.
type Twin struct {
	Db db.DB

	MaxSubtreeSize int64
	MaxTreeResults int

	Store     IStore
	Hierarchy IHierarchy
	State     IState
	Query     IQuery

	structuralLocks *LockStore
	stateLocks      *LockStore
}

func New(dbInstance db.DB) *Twin {
	return &Twin{
		Db:              dbInstance,
		MaxSubtreeSize:  DefaultMaxSubtreeSize,
		MaxTreeResults:  DefaultMaxTreeResults,
		structuralLocks: NewLockStore(),
		stateLocks:      NewLockStore(),
	}
}

type ServiceOpts struct {
	Store     IStore
	Hierarchy IHierarchy
	State     IState
	Query     IQuery
}

func (t *Twin) WithServices(opts ServiceOpts) *Twin {
	if opts.Store != nil {
		t.Store = opts.Store
	}
	if opts.Hierarchy != nil {
		t.Hierarchy = opts.Hierarchy
	}
	if opts.State != nil {
		t.State = opts.State
	}
	if opts.Query != nil {
		t.Query = opts.Query
	}
	return t
}
