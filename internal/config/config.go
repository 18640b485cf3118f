package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list values
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// DefaultSeedURL is the fixed dataset imported by the seed operation
const DefaultSeedURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

// Supported storage backends
const (
	DriverMongo  = "mongo"  // MongoDB document store
	DriverMySQL  = "mysql"  // MySQL through GORM
	DriverMemory = "memory" // In-process store, for local runs
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	APIPrefix       string        // Path prefix of the API routes
	DBDriver        string        // Storage backend: mongo, mysql or memory
	MongoURI        string        // MongoDB connection string
	MongoDB         string        // MongoDB database name
	MongoCollection string        // MongoDB collection holding transactions
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name
	RedisAddr       string        // Redis server address, empty disables the shared seed lock
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	SeedURL         string        // Dataset fetched by the seed operation
	SeedTimeout     time.Duration // Timeout of the dataset fetch
	CORSOrigins     []string      // Origins allowed to call the API from a browser
	LogLevel        string        // Logrus level name
	IsProd          bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		APIPrefix:       strings.TrimSuffix(getEnv("API_PREFIX", "/api"), "/"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", DriverMongo)),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "dashboard"),
		MongoCollection: getEnv("MONGO_COLLECTION", "transactions"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          getEnv("DB_HOST", "127.0.0.1"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBName:          os.Getenv("DB_NAME"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         redisDB,
		SeedURL:         getEnv("SEED_URL", DefaultSeedURL),
		SeedTimeout:     getEnvDuration("SEED_TIMEOUT", 30*time.Second),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		IsProd:          os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// MySQLDSN builds the Data Source Name for the MySQL backend
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=UTC"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
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
