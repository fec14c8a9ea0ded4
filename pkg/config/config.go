package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string
	ConnectionTestCollection   string

	CacheDriver     string
	CacheSQLitePath string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	AdminPassword string
	AdminEmails   []string
	JWTSecret     string
	JWTExpiry     int64

	MaxKeysPerRequest int
	AllowedOrigins    []string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		ConnectionTestCollection:   getEnv("CONNECTION_TEST_COLLECTION", "connection_test"),

		CacheDriver:     strings.ToLower(getEnv("CACHE_DRIVER", "memory")),
		CacheSQLitePath: getEnv("CACHE_SQLITE_PATH", "review_cache.db"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),

		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminEmails:   getEnvAsList("ADMIN_EMAILS"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:     getEnvAsInt64("JWT_EXPIRY", 30*60), // 30 minutes

		MaxKeysPerRequest: getEnvAsInt("MAX_KEYS_PER_REQUEST", 100),
		AllowedOrigins:    getEnvAsList("ALLOWED_ORIGINS"),
	}

	return config, nil
}

// UsesFirestore reports whether a Firebase project is configured. Without one the
// service runs on the in-memory primary store.
func (c *Config) UsesFirestore() bool {
	return c.FirebaseProject != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
