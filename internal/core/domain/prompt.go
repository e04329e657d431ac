package domain

import "time"

// Prompt is a catalog entry, either authored locally upstream or pulled from
// a federated market.
type Prompt struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ExternalID string    `json:"external_id,omitempty" bson:"external_id,omitempty"`
	Title      string    `json:"title" bson:"title"`
	Content    string    `json:"content" bson:"content"`
	Author     string    `json:"author,omitempty" bson:"author,omitempty"`
	Category   string    `json:"category,omitempty" bson:"category,omitempty"`
	Tags       []string  `json:"tags,omitempty" bson:"tags,omitempty"`
	Likes      int       `json:"likes" bson:"likes"`
	Source     string    `json:"source" bson:"source"`
	SyncedAt   time.Time `json:"synced_at" bson:"synced_at"`
}

// SyncJob asks the catalog service to refresh the cache for one market.
type SyncJob struct {
	Market      string
	RequestedBy string
	RequestedAt time.Time
}
