package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort        string
	MySQLDSN          string
	MongoURL          string
	MongoDatabase     string
	PatientCollection string
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	SessionTTL        time.Duration
	SeedCSVPath       string
	AdminEmail        string
	AdminPassword     string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		// clientFoundRows makes RowsAffected count matched rows rather
		// than changed rows; the user repository's "no row matched"
		// results depend on it. A custom MYSQL_DSN must keep the flag.
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/london_health?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true"),
		MongoURL:          getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("DB_NAME", "HealthcareDB"),
		PatientCollection: getEnv("PATIENT_COLLECTION", "StrokeData"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		SessionTTL:        time.Duration(getEnvInt("SESSION_TTL_HOURS", 720)) * time.Hour,
		SeedCSVPath:       getEnv("SEED_CSV_PATH", "healthcare-dataset-stroke-data.csv"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
