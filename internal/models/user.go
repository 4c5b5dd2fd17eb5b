package models

import "time"

// User is a Telegram user that has talked to the bot
type User struct {
	ID            uint  `gorm:"primaryKey"`
	TelegramID    int64 `gorm:"uniqueIndex;not null"`
	Username      string
	FirstName     string
	Role          Role `gorm:"default:user"`
	IsWhitelisted bool
	IsBanned      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Favorite is a catalog item bookmarked by a user
type Favorite struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    int64     `gorm:"uniqueIndex:idx_favorite_user_tmdb;not null"`
	TMDBID    int64     `gorm:"column:tmdb_id;uniqueIndex:idx_favorite_user_tmdb;not null"`
	MediaType MediaType `gorm:"default:movie"`
	Title     string
	CreatedAt time.Time
}

// Request is a user's ask for a title to be uploaded
type Request struct {
	ID        uint          `gorm:"primaryKey"`
	UserID    int64         `gorm:"index;not null"`
	TMDBID    int64         `gorm:"column:tmdb_id;not null"`
	MediaType MediaType     `gorm:"default:movie"`
	Title     string
	Status    RequestStatus `gorm:"default:pending;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Setting is a key/value runtime switch
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}
