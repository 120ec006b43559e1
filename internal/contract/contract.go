// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/covidash/schema"
)

// DatasetManager defines the interface for reaching the dataset store.
// This allows the store layer to be mocked for testing.
type DatasetManager interface {
	GetDatasetStore() DatasetStore
}

// DatasetStore holds the single loaded dataset.
type DatasetStore interface {
	// ReplaceRecords swaps the stored dataset for records in one transaction.
	ReplaceRecords(ctx context.Context, sourceName string, records []schema.Record) error

	// LoadRecords returns the stored dataset in insertion order.
	LoadRecords(ctx context.Context) ([]schema.Record, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
