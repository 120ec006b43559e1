package core

import (
	"context"

	"github.com/huangsam/covidash/schema"
)

// Context key for the loaded dataset
type contextKey string

const datasetKey contextKey = "dataset"

// WithDataset attaches an already loaded dataset to the context. Execution entry
// points use it instead of reading the file or the store again.
// The dataset must not be modified afterwards.
func WithDataset(ctx context.Context, dataset []schema.Record) context.Context {
	return context.WithValue(ctx, datasetKey, dataset)
}

// datasetFromContext returns the dataset attached with WithDataset
func datasetFromContext(ctx context.Context) ([]schema.Record, bool) {
	dataset, ok := ctx.Value(datasetKey).([]schema.Record)
	return dataset, ok
}
