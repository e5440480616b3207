package models

import "time"

// Archive is the document uploaded to object storage by an export.
type Archive struct {
	UserID     string    `json:"user"`
	ExportedAt time.Time `json:"exportedAt"`
	Notes      []*Note   `json:"notes"`
}

// Export describes a finished upload and where to fetch it.
type Export struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}
