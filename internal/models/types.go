package models

// MediaType represents the type of media (movie or tv show)
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType maps a catalog kind to a MediaType, reporting whether it is one we keep
func ParseMediaType(kind string) (MediaType, bool) {
	switch MediaType(kind) {
	case MediaTypeMovie:
		return MediaTypeMovie, true
	case MediaTypeTV:
		return MediaTypeTV, true
	default:
		return "", false
	}
}

// Role of a bot user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// RequestStatus represents the lifecycle of an upload request
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusRejected  RequestStatus = "rejected"
)

// DefaultQuality is stored when a caption carries no recognizable quality tag
const DefaultQuality = "HD"

// SettingMaintenance is the settings key of the maintenance flag
const SettingMaintenance = "maintenance"
