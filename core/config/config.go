package config

import (
	"fmt"
	"sync"

	"moim-api/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret          string
	ExpiryHours     int
	MemberExpiryHrs int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type TimetableConfig struct {
	// FeedURL is the third-party timetable endpoint the identifier is posted to.
	FeedURL        string
	TimeoutSeconds int
}

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Timetable TimetableConfig
}

var (
	instance    *Config
	initialized bool
	mu          sync.RWMutex
)

// Load reads .env (if present) and environment variables into the config
// singleton. Call once at startup.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "moim")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_EXPIRY_HOURS", 72)
	v.SetDefault("JWT_MEMBER_EXPIRY_HOURS", 168)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TIMETABLE_FEED_URL", "https://api.everytime.kr/find/timetable/table/friend")
	v.SetDefault("TIMETABLE_TIMEOUT_SECONDS", 10)

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("JWT_SECRET"),
			ExpiryHours:     v.GetInt("JWT_EXPIRY_HOURS"),
			MemberExpiryHrs: v.GetInt("JWT_MEMBER_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Timetable: TimetableConfig{
			FeedURL:        v.GetString("TIMETABLE_FEED_URL"),
			TimeoutSeconds: v.GetInt("TIMETABLE_TIMEOUT_SECONDS"),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	mu.Lock()
	instance = cfg
	initialized = true
	mu.Unlock()

	return cfg, nil
}

// Get returns the loaded config. Panics if Load was never called.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Get called before Load")
	}
	return cfg
}

// GetSafe returns the loaded config and whether it has been initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, initialized
}
