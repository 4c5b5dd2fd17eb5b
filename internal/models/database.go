package models

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("record already exists")
)

// Database wraps the gorm connection
type Database struct {
	db *gorm.DB
}

// NewDatabase opens the sqlite database and migrates the schema
func NewDatabase(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Media{}, &User{}, &Favorite{}, &Request{}, &Setting{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// Media operations

// CreateMedia inserts an archived file; ErrDuplicate if its file reference is already archived
func (d *Database) CreateMedia(media *Media) error {
	if media.FileID == "" {
		return fmt.Errorf("file reference is required")
	}
	if media.Quality == "" {
		media.Quality = DefaultQuality
	}
	return translate(d.db.Create(media).Error)
}

// GetMediaByID retrieves an archived file by its local id
func (d *Database) GetMediaByID(id uint) (*Media, error) {
	var media Media
	if err := d.db.First(&media, id).Error; err != nil {
		return nil, translate(err)
	}
	return &media, nil
}

// GetMediaByFileID retrieves an archived file by its Telegram file reference
func (d *Database) GetMediaByFileID(fileID string) (*Media, error) {
	var media Media
	if err := d.db.Where("file_id = ?", fileID).First(&media).Error; err != nil {
		return nil, translate(err)
	}
	return &media, nil
}

// GetMediaByTMDBID retrieves the first archived file matched to a catalog id
func (d *Database) GetMediaByTMDBID(tmdbID int64) (*Media, error) {
	var media Media
	if err := d.db.Where("tmdb_id = ?", tmdbID).Order("id").First(&media).Error; err != nil {
		return nil, translate(err)
	}
	return &media, nil
}

// GetMediasGroupedByTMDBID returns one record per catalog id (the first inserted variant)
// plus every record that has no catalog id yet
func (d *Database) GetMediasGroupedByTMDBID() ([]*Media, error) {
	var medias []*Media
	if err := d.db.Order("id").Find(&medias).Error; err != nil {
		return nil, err
	}
	return GroupByTMDBID(medias), nil
}

// GroupByTMDBID collapses file variants sharing a catalog id, preserving order
func GroupByTMDBID(medias []*Media) []*Media {
	seen := make(map[int64]bool)
	grouped := make([]*Media, 0, len(medias))
	for _, media := range medias {
		if media.HasTMDBID() {
			if seen[*media.TMDBID] {
				continue
			}
			seen[*media.TMDBID] = true
		}
		grouped = append(grouped, media)
	}
	return grouped
}

// GetRandomMedias returns up to n archived files in random order
func (d *Database) GetRandomMedias(n int) ([]*Media, error) {
	var medias []*Media
	err := d.db.Order("RANDOM()").Limit(n).Find(&medias).Error
	return medias, err
}

// CountMedias returns the number of archived files
func (d *Database) CountMedias() (int64, error) {
	var count int64
	err := d.db.Model(&Media{}).Count(&count).Error
	return count, err
}

// CountMediasByType returns archived file counts keyed by media type
func (d *Database) CountMediasByType() (map[MediaType]int64, error) {
	var rows []struct {
		MediaType MediaType
		Count     int64
	}
	err := d.db.Model(&Media{}).
		Select("media_type, COUNT(*) AS count").
		Group("media_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[MediaType]int64, len(rows))
	for _, row := range rows {
		counts[row.MediaType] = row.Count
	}
	return counts, nil
}

// User operations

// UpsertUser registers a user on first contact and refreshes their names afterwards
func (d *Database) UpsertUser(telegramID int64, username, firstName string) (*User, error) {
	var user User
	err := d.db.Where(User{TelegramID: telegramID}).
		Assign(User{Username: username, FirstName: firstName}).
		FirstOrCreate(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Another update for the same user created the row first
		return d.GetUserByTelegramID(telegramID)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByTelegramID retrieves a user by Telegram id
func (d *Database) GetUserByTelegramID(telegramID int64) (*User, error) {
	var user User
	if err := d.db.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// SetBanned bans or pardons a user; ErrNotFound if the user never talked to the bot
func (d *Database) SetBanned(telegramID int64, banned bool) error {
	res := d.db.Model(&User{}).Where("telegram_id = ?", telegramID).Update("is_banned", banned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AllowUser whitelists a user, creating the row when the user is unknown
func (d *Database) AllowUser(telegramID int64) error {
	var user User
	err := d.db.Where(User{TelegramID: telegramID}).
		Assign(User{IsWhitelisted: true}).
		FirstOrCreate(&user).Error
	return translate(err)
}

// ListUserTelegramIDs returns every known Telegram id
func (d *Database) ListUserTelegramIDs() ([]int64, error) {
	var ids []int64
	err := d.db.Model(&User{}).Order("id").Pluck("telegram_id", &ids).Error
	return ids, err
}

// CountUsers returns the number of known users
func (d *Database) CountUsers() (int64, error) {
	var count int64
	err := d.db.Model(&User{}).Count(&count).Error
	return count, err
}

// Favorite operations

// AddFavorite bookmarks a catalog item; ErrDuplicate if already bookmarked
func (d *Database) AddFavorite(fav *Favorite) error {
	return translate(d.db.Create(fav).Error)
}

// GetFavorite retrieves a user's bookmark of a catalog item
func (d *Database) GetFavorite(userID, tmdbID int64) (*Favorite, error) {
	var fav Favorite
	if err := d.db.Where("user_id = ? AND tmdb_id = ?", userID, tmdbID).First(&fav).Error; err != nil {
		return nil, translate(err)
	}
	return &fav, nil
}

// ListFavorites returns a user's most recent bookmarks
func (d *Database) ListFavorites(userID int64, limit int) ([]*Favorite, error) {
	var favs []*Favorite
	err := d.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Limit(limit).Find(&favs).Error
	return favs, err
}

// Request operations

// CreateRequest records an upload request
func (d *Database) CreateRequest(req *Request) error {
	if req.Status == "" {
		req.Status = RequestStatusPending
	}
	return translate(d.db.Create(req).Error)
}

// GetPendingRequest retrieves a user's pending request for a catalog item
func (d *Database) GetPendingRequest(userID, tmdbID int64) (*Request, error) {
	var req Request
	err := d.db.Where("user_id = ? AND tmdb_id = ? AND status = ?", userID, tmdbID, RequestStatusPending).
		First(&req).Error
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

// GetRequestByID retrieves a request by id
func (d *Database) GetRequestByID(id uint) (*Request, error) {
	var req Request
	if err := d.db.First(&req, id).Error; err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

// UpdateRequestStatus moves a request to a new status
func (d *Database) UpdateRequestStatus(id uint, status RequestStatus) error {
	res := d.db.Model(&Request{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPendingRequests returns the oldest pending requests first
func (d *Database) ListPendingRequests(limit int) ([]*Request, error) {
	var reqs []*Request
	err := d.db.Where("status = ?", RequestStatusPending).Order("id").Limit(limit).Find(&reqs).Error
	return reqs, err
}

// CountPendingRequests returns the number of pending requests
func (d *Database) CountPendingRequests() (int64, error) {
	var count int64
	err := d.db.Model(&Request{}).Where("status = ?", RequestStatusPending).Count(&count).Error
	return count, err
}

// Setting operations

// GetSetting returns a setting value, or "" when unset
func (d *Database) GetSetting(key string) (string, error) {
	var setting Setting
	err := d.db.Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// SetSetting stores a setting value
func (d *Database) SetSetting(key, value string) error {
	return d.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&Setting{Key: key, Value: value}).Error
}

// IsMaintenance reports whether maintenance mode is on
func (d *Database) IsMaintenance() (bool, error) {
	value, err := d.GetSetting(SettingMaintenance)
	return value == "1", err
}

// ToggleMaintenance flips maintenance mode and returns the new state
func (d *Database) ToggleMaintenance() (bool, error) {
	var enabled bool
	err := d.db.Transaction(func(tx *gorm.DB) error {
		var setting Setting
		err := tx.Where("key = ?", SettingMaintenance).First(&setting).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		enabled = setting.Value != "1"
		value := "0"
		if enabled {
			value = "1"
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&Setting{Key: SettingMaintenance, Value: value}).Error
	})
	return enabled, err
}
