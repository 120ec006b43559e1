package schema

import "time"

// StoreStatus represents the status of the dataset store.
type StoreStatus struct {
	Backend      string    `json:"backend"`
	Connected    bool      `json:"connected"`
	TotalRecords int       `json:"total_records"`
	SourceName   string    `json:"source_name"`
	ImportedAt   time.Time `json:"imported_at"`
	FirstDate    time.Time `json:"first_date"`
	LastDate     time.Time `json:"last_date"`
	Countries    int       `json:"countries"`
}
