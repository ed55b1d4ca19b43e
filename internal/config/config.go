package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"zerohero/models"
)

// Config holds all application configuration. It is built once at startup
// and passed explicitly; nothing reads the environment after Load returns.
type Config struct {
	// Signal thresholds
	PriceCeiling float64 // max LTP for a "near-worthless" contract
	OTMOffset    float64 // min distance from the underlying, in index points

	// Data source: "nse" or "breeze"
	DataSource string

	// NSE / Breeze endpoints (overridable for tests)
	NSEBaseURL    string
	BreezeBaseURL string
	BreezeAPIKey  string
	BreezeSession string

	// Outcome log
	OutcomePath string

	// Dashboard
	ListenAddr   string
	TemplatesDir string

	// HTTP
	RequestTimeout int // seconds
	RequestsPerSec int

	// Optional candidate archive (Postgres); disabled when DBHost is empty
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Optional Telegram alerts; disabled when token is empty
	TelegramToken      string
	TelegramChatID     int64
	AlertMinConfidence float64

	// ICICI order placement (manual trigger only)
	ICICIAPIKey      string
	ICICIAccessToken string

	LogLevel string

	// Index table, fixed for the life of the process.
	Indexes    map[string]models.IndexInfo
	IndexNames []string
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := Config{
		PriceCeiling:       getEnvFloatWithDefault("ZERO_PRICE_MAX", 5),
		OTMOffset:          getEnvFloatWithDefault("OTM_STRIKE_OFFSET", 200),
		DataSource:         getEnvWithDefault("DATA_SOURCE", "nse"),
		NSEBaseURL:         getEnvWithDefault("NSE_BASE_URL", "https://www.nseindia.com"),
		BreezeBaseURL:      getEnvWithDefault("BREEZE_BASE_URL", "https://api.icicidirect.com"),
		BreezeAPIKey:       os.Getenv("BREEZE_API_KEY"),
		BreezeSession:      os.Getenv("BREEZE_SESSION_TOKEN"),
		OutcomePath:        getEnvWithDefault("OUTCOME_LOG_PATH", "data/zero_hero_log.json"),
		ListenAddr:         getEnvWithDefault("LISTEN_ADDR", ":8080"),
		TemplatesDir:       getEnvWithDefault("TEMPLATES_DIR", "templates"),
		RequestTimeout:     getEnvIntWithDefault("REQUEST_TIMEOUT", 30),
		RequestsPerSec:     getEnvIntWithDefault("REQUESTS_PER_SEC", 3),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             getEnvWithDefault("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSSLMode:          getEnvWithDefault("DB_SSLMODE", "disable"),
		TelegramToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:     getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0),
		AlertMinConfidence: getEnvFloatWithDefault("ALERT_MIN_CONFIDENCE", 80),
		ICICIAPIKey:        os.Getenv("ICICI_API_KEY"),
		ICICIAccessToken:   os.Getenv("ICICI_ACCESS_TOKEN"),
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
		Indexes:            IndexTable(),
		IndexNames:         []string{"NIFTY", "BANKNIFTY", "FINNIFTY"},
	}

	return &cfg, nil
}

// IndexTable returns the fixed index configuration. Expiry weekdays use the
// 0=Monday..6=Sunday convention.
func IndexTable() map[string]models.IndexInfo {
	return map[string]models.IndexInfo{
		"NIFTY":     {Symbol: "NIFTY", ExpiryWeekday: 3},
		"BANKNIFTY": {Symbol: "BANKNIFTY", ExpiryWeekday: 3},
		"FINNIFTY":  {Symbol: "FINNIFTY", ExpiryWeekday: 1},
	}
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
