// Package iostore persists the loaded dataset in a SQL database.
package iostore

import (
	"sync"

	"github.com/huangsam/covidash/internal/contract"
)

// StoreManager manages the DatasetStore instance.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	dataset      contract.DatasetStore
}

var _ contract.DatasetManager = &StoreManager{} // Compile-time check

// GetDatasetStore returns the DatasetStore.
func (mgr *StoreManager) GetDatasetStore() contract.DatasetStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.dataset
}
