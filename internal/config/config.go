package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Telegram
	TelegramToken    string
	AdminUserID      int64 // 0 disables admin commands
	WhitelistEnabled bool
	ChannelInviteURL string

	// TMDB
	TMDBAPIKey     string
	TMDBLanguage   string // Fixed locale for every catalog query (default: es-ES)
	TMDBRegion     string // Region used for watch providers (default: ES)
	CatalogTimeout time.Duration

	// YTS
	YTSMirrors []string
	YTSTimeout time.Duration // Per-mirror attempt budget (default: 3s)

	// Streaming embeds shown on discovery cards
	StreamMirrors []string

	// Matching
	FuzzyThreshold float64

	// Rate limiting
	RateLimitCount  int
	RateLimitWindow time.Duration

	// Admin tools
	BroadcastDelay    time.Duration
	RequestDigestCron string

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/cineslime.db unless DB_PATH is set

	// Logging
	LogLevel  string
	LogFormat string // text or json
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	v.SetDefault("TMDB_LANGUAGE", "es-ES")
	v.SetDefault("TMDB_REGION", "ES")
	v.SetDefault("CATALOG_TIMEOUT_SECONDS", 10)
	v.SetDefault("YTS_MIRRORS", "https://yts.mx,https://yts.pm,https://yts.ag,https://yts.am")
	v.SetDefault("YTS_TIMEOUT_MS", 3000)
	v.SetDefault("STREAM_MIRRORS", "https://vidsrc.xyz,https://vidsrc.to")
	v.SetDefault("FUZZY_THRESHOLD", 0.4)
	v.SetDefault("RATE_LIMIT_COUNT", 5)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("BROADCAST_DELAY_MS", 50)
	v.SetDefault("REQUEST_DIGEST_CRON", "0 9 * * *")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	configDir := v.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "cineslime")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	dbPath := v.GetString("DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(configDir, "cineslime.db")
	}

	// Create the database directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	config := &Config{
		// Telegram
		TelegramToken:    v.GetString("TELEGRAM_BOT_TOKEN"),
		AdminUserID:      v.GetInt64("ADMIN_USER_ID"),
		WhitelistEnabled: v.GetBool("WHITELIST_ENABLED"),
		ChannelInviteURL: v.GetString("CHANNEL_INVITE_URL"),

		// TMDB
		TMDBAPIKey:     v.GetString("TMDB_API_KEY"),
		TMDBLanguage:   v.GetString("TMDB_LANGUAGE"),
		TMDBRegion:     v.GetString("TMDB_REGION"),
		CatalogTimeout: time.Duration(v.GetInt("CATALOG_TIMEOUT_SECONDS")) * time.Second,

		// YTS
		YTSMirrors: splitList(v.GetString("YTS_MIRRORS")),
		YTSTimeout: time.Duration(v.GetInt("YTS_TIMEOUT_MS")) * time.Millisecond,

		StreamMirrors: splitList(v.GetString("STREAM_MIRRORS")),

		FuzzyThreshold: v.GetFloat64("FUZZY_THRESHOLD"),

		RateLimitCount:  v.GetInt("RATE_LIMIT_COUNT"),
		RateLimitWindow: time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,

		BroadcastDelay:    time.Duration(v.GetInt("BROADCAST_DELAY_MS")) * time.Millisecond,
		RequestDigestCron: v.GetString("REQUEST_DIGEST_CRON"),

		ServerPort: v.GetString("SERVER_PORT"),

		DatabaseFile: dbPath,

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.TMDBAPIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if len(c.YTSMirrors) == 0 {
		return fmt.Errorf("YTS_MIRRORS must list at least one mirror")
	}
	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("FUZZY_THRESHOLD must be in (0, 1], got %v", c.FuzzyThreshold)
	}
	if c.RateLimitCount <= 0 {
		return fmt.Errorf("RATE_LIMIT_COUNT must be positive")
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive")
	}
	return nil
}

// IsAdmin reports whether the telegram user id is the configured administrator
func (c *Config) IsAdmin(userID int64) bool {
	return c.AdminUserID != 0 && userID == c.AdminUserID
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
