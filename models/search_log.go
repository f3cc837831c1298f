package models

import "time"

// SearchLog is append-only; one row per search request, used for analytics.
type SearchLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SearchQuery string    `gorm:"size:500;not null;index" json:"search_query"`
	SearchType  string    `gorm:"size:50" json:"search_type"`
	UserID      *uint     `json:"user_id"`
	IPAddress   string    `gorm:"size:50" json:"ip_address"`
	ResultCount int       `gorm:"default:0" json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}
