package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Billing modes for deduction-status players with a mid-session shortfall.
const (
	DeductionBillingDeferred  = "deferred"
	DeductionBillingImmediate = "immediate"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis (ranking cache)
	RedisURL               string
	RankingCacheTTLSeconds int

	// Security
	JWTSecret string

	// Telegram notifications (optional)
	TelegramBotToken string
	TelegramChatID   int64

	// Application
	AppEnv   string
	LogLevel string

	// Ranking defaults
	RankingMinGames    int
	RankingMaxWinFloor int64
	RankingMinStreak   int
	RankingBoardSize   int

	// Settlement
	DeductionBilling string

	// Registration
	InitialBalance int64
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "clubledger"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "clubledger_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL:               getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RankingCacheTTLSeconds: getEnvInt("RANKING_CACHE_TTL_SECONDS", 300),

		JWTSecret: getEnv("JWT_SECRET_KEY", ""),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RankingMinGames:    getEnvInt("RANKING_MIN_GAMES", 3),
		RankingMaxWinFloor: getEnvInt64("RANKING_MAX_WIN_FLOOR", 30000),
		RankingMinStreak:   getEnvInt("RANKING_MIN_STREAK", 3),
		RankingBoardSize:   getEnvInt("RANKING_BOARD_SIZE", 10),

		DeductionBilling: getEnv("DEDUCTION_BILLING", DeductionBillingDeferred),

		InitialBalance: getEnvInt64("INITIAL_BALANCE", 0),
	}

	chatIDStr := getEnv("TELEGRAM_CHAT_ID", "")
	if chatIDStr != "" {
		id, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateProductionSecurity(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.DeductionBilling != DeductionBillingDeferred && c.DeductionBilling != DeductionBillingImmediate {
		return fmt.Errorf("DEDUCTION_BILLING must be %q or %q", DeductionBillingDeferred, DeductionBillingImmediate)
	}
	if c.RankingBoardSize <= 0 {
		return fmt.Errorf("RANKING_BOARD_SIZE must be positive")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.JWTSecret == "your_jwt_secret_minimum_32_chars_here_change_this" {
		return fmt.Errorf("JWT_SECRET_KEY must be changed from default in production")
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) RankingCacheTTL() time.Duration {
	return time.Duration(c.RankingCacheTTLSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
