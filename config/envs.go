package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Recorder driver names accepted in RECORDER_DRIVER.
const (
	DriverNone   = "none"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP   string // Host IP for the REST server
	RESTPort int    // Port for the REST API
	GinMode  string // Mode for the Gin framework (e.g., release, debug, test)

	RecorderDriver string // Run/move recorder backend: none, sqlite or mongo
	SQLitePath     string // Path of the SQLite database file

	DBHost     string // Hostname or IP address for MongoDB
	DBPort     int    // Port number for MongoDB
	DBUser     string // Username for MongoDB
	DBPassword string // Password for MongoDB
	DBName     string // Name of the MongoDB database

	RedisAddr       string // Redis address; empty disables the leaderboard
	LeaderboardKey  string // Sorted-set key holding the leaderboard
	LeaderboardSize int    // Max runs kept on the board; 0 keeps all
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file when present. Everything
// has a default so the CLI works out of the box with a local SQLite file.
func initConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:   getEnvWithDefault("HOST_IP", "127.0.0.1"),
		RESTPort: getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:  getEnvWithDefault("GIN_MODE", "release"),

		RecorderDriver: getEnvWithDefault("RECORDER_DRIVER", DriverSQLite),
		SQLitePath:     getEnvWithDefault("SQLITE_PATH", "treasuremaze.db"),

		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     getEnvAsIntWithDefault("DB_PORT", 27017),
		DBUser:     getEnvWithDefault("DB_USER", ""),
		DBPassword: getEnvWithDefault("DB_PASS", ""),
		DBName:     getEnvWithDefault("DB_NAME", "treasuremaze"),

		RedisAddr:       getEnvWithDefault("REDIS_ADDR", ""),
		LeaderboardKey:  getEnvWithDefault("LEADERBOARD_KEY", "treasuremaze:leaderboard"),
		LeaderboardSize: getEnvAsIntWithDefault("LEADERBOARD_SIZE", 100),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an environment variable as an integer,
// logging a fatal error when it is set but cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
