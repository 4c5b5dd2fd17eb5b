package models

import "time"

// Media is an archived file from the private channel
type Media struct {
	ID            uint   `gorm:"primaryKey"`
	TMDBID        *int64 `gorm:"column:tmdb_id;index"` // nil until matched against the catalog
	MediaType     MediaType
	Title         string `gorm:"not null;index"`
	OriginalTitle string
	Year          int
	FileID        string `gorm:"not null;uniqueIndex"` // Telegram file reference, unit of dedup
	Quality       string `gorm:"default:HD"`
	Language      string
	Caption       string
	CreatedAt     time.Time
}

// TableName keeps the table name of the original schema
func (Media) TableName() string {
	return "media_content"
}

// HasTMDBID reports whether the record was matched against the catalog
func (m *Media) HasTMDBID() bool {
	return m.TMDBID != nil && *m.TMDBID != 0
}
