package schema

import "time"

// StoreStatus represents the status of the evaluation store.
type StoreStatus struct {
	Backend        string    `json:"backend"`
	Location       string    `json:"location"`
	Connected      bool      `json:"connected"`
	TotalEntries   int       `json:"total_entries"`
	LastUpdateTime time.Time `json:"last_update_time"`
	SizeBytes      int64     `json:"size_bytes"`
}
