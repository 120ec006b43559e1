package iostore

import (
	"context"

	"github.com/huangsam/covidash/internal/contract"
	"github.com/huangsam/covidash/schema"
	"github.com/stretchr/testify/mock"
)

// MockDatasetManager is a mock implementation of DatasetManager for testing.
type MockDatasetManager struct {
	mock.Mock
}

var _ contract.DatasetManager = &MockDatasetManager{} // Compile-time check

// GetDatasetStore implements the DatasetManager interface.
func (m *MockDatasetManager) GetDatasetStore() contract.DatasetStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.DatasetStore)
	return store
}

// MockDatasetStore is a mock implementation of DatasetStore for testing.
type MockDatasetStore struct {
	mock.Mock
}

var _ contract.DatasetStore = &MockDatasetStore{} // Compile-time check

// ReplaceRecords implements the DatasetStore interface.
func (m *MockDatasetStore) ReplaceRecords(ctx context.Context, sourceName string, records []schema.Record) error {
	args := m.Called(ctx, sourceName, records)
	return args.Error(0)
}

// LoadRecords implements the DatasetStore interface.
func (m *MockDatasetStore) LoadRecords(ctx context.Context) ([]schema.Record, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.Record)
	return records, args.Error(1)
}

// GetStatus implements the DatasetStore interface.
func (m *MockDatasetStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the DatasetStore interface.
func (m *MockDatasetStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
