package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values
	"time"    // For cache TTL

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort     string        // Application port
	DBDriver    string        // Database driver: mysql, postgres or sqlite
	DBUser      string        // Database user
	DBPassword  string        // Database password
	DBHost      string        // Database host
	DBPort      string        // Database port
	DBName      string        // Database name
	DBPath      string        // SQLite database file
	RedisAddr   string        // Redis server address, empty disables the cache
	RedisPass   string        // Redis password
	RedisDB     int           // Redis database number
	CacheTTL    time.Duration // Wallet cache TTL
	CORSOrigins []string      // Origins allowed to call /api
	LogLevel    string        // Logrus level name
	IsProd      bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:     getEnv("APP_PORT", "8080"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      os.Getenv("DB_PORT"),
		DBName:      getEnv("DB_NAME", "digiwallet"),
		DBPath:      getEnv("DB_PATH", "digiwallet.db"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPass:   os.Getenv("REDIS_PASS"),
		RedisDB:     getIntEnv("REDIS_DB", 0),
		CacheTTL:    time.Duration(getIntEnv("CACHE_TTL_SECONDS", 60)) * time.Second,
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		IsProd:      os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
			" dbname=" + c.DBName + " port=" + port + " sslmode=disable"
	case DriverSQLite:
		// pragmas in the DSN apply to every pooled connection
		if strings.Contains(c.DBPath, "_foreign_keys=") {
			return c.DBPath
		}
		sep := "?"
		if strings.Contains(c.DBPath, "?") {
			sep = "&"
		}
		return c.DBPath + sep + "_foreign_keys=on"
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
	}
}

// getEnv returns the variable or a fallback when unset or empty
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getIntEnv returns the variable parsed as int or a fallback
func getIntEnv(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
