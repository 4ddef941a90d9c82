package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                 string
	AllowedOrigins       []string
	DatabaseURL          string
	DBDriver             string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	StatsFile            string
	RedisURL             string
	RedisPassword        string
	StatsCacheTTL        time.Duration
	KafkaBrokers         []string
	KafkaTopic           string
	HistoryRetentionDays int
	RNGSeed              int64
	LogFile              string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// CORS: localhost for development plus CSV values
	allowedOrigins := []string{"http://localhost:5173"}
	allowedOrigins = append(allowedOrigins, splitList(GetEnv("ALLOWED_ORIGINS", ""))...)

	// Database Config
	dbDriver := GetEnv("DB_DRIVER", "pgx")
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	if dbURL != "" && dbDriver == "pgx" {
		// Append simple_protocol for PgBouncer compatibility (pgx driver)
		if u, err := url.Parse(dbURL); err == nil {
			q := u.Query()
			if q.Get("default_query_exec_mode") == "" {
				q.Set("default_query_exec_mode", "simple_protocol")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}
	dbMaxOpenConns := GetEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	dbMaxIdleConns := GetEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	dbConnMaxLifetimeMin := GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	// Offline store, used when DATABASE_URL is empty
	statsFile := GetEnv("STATS_FILE", "connect4_stats.json")

	// Cache
	redisURL := GetEnv("REDIS_URL", "")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	cacheTTLSec := GetEnvAsInt("STATS_CACHE_TTL_SECONDS", 30)

	// Analytics
	kafkaBrokers := splitList(GetEnv("KAFKA_BROKERS", ""))
	kafkaTopic := GetEnv("KAFKA_TOPIC", "connect4-games")

	retentionDays := GetEnvAsInt("HISTORY_RETENTION_DAYS", 0)

	var seed int64
	if s := GetEnv("RNG_SEED", ""); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			log.Printf("Invalid integer value for RNG_SEED: %s, seeding from the clock", s)
		} else {
			seed = v
		}
	}

	AppConfig = &Config{
		Port:                 port,
		AllowedOrigins:       allowedOrigins,
		DatabaseURL:          dbURL,
		DBDriver:             dbDriver,
		DBMaxOpenConns:       dbMaxOpenConns,
		DBMaxIdleConns:       dbMaxIdleConns,
		DBConnMaxLifetimeMin: dbConnMaxLifetimeMin,
		StatsFile:            statsFile,
		RedisURL:             redisURL,
		RedisPassword:        redisPassword,
		StatsCacheTTL:        time.Duration(cacheTTLSec) * time.Second,
		KafkaBrokers:         kafkaBrokers,
		KafkaTopic:           kafkaTopic,
		HistoryRetentionDays: retentionDays,
		RNGSeed:              seed,
		LogFile:              GetEnv("LOG_FILE", "connect4.log"),
	}

	return AppConfig
}

// Seed returns RNGSeed, or the current time when no seed was configured.
func (c *Config) Seed() int64 {
	if c.RNGSeed != 0 {
		return c.RNGSeed
	}
	return time.Now().UnixNano()
}

func splitList(csv string) []string {
	var out []string
	for _, item := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
