package twin

import (
	"sort"
	"sync"
)

// LockStore manages striped per-asset locks: asset_id -> mutex. Rollup
// folds take one stripe at a time (child before parent); structural
// operations take a whole set in ascending-id order so two overlapping
// moves cannot deadlock.
type LockStore struct {
	locks map[string]*sync.Mutex
	mu    sync.Mutex
}

func NewLockStore() *LockStore {
	return &LockStore{
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *LockStore) Get(assetID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[assetID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[assetID] = lock
	}
	return lock
}

// AcquireOrdered locks every id in ascending order and returns a release
// function that unlocks in reverse. Duplicate ids are collapsed first.
func (s *LockStore) AcquireOrdered(assetIDs []string) func() {
	unique := make(map[string]bool, len(assetIDs))
	ordered := make([]string, 0, len(assetIDs))
	for _, id := range assetIDs {
		if !unique[id] {
			unique[id] = true
			ordered = append(ordered, id)
		}
	}
	sort.Strings(ordered)

	acquired := make([]*sync.Mutex, 0, len(ordered))
	for _, id := range ordered {
		lock := s.Get(id)
		lock.Lock()
		acquired = append(acquired, lock)
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}
