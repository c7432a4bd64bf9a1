package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/radtech/authd/pkg/jwtx"
)

type Config struct {
	JWTSecret string        // Required: shared secret for HS256 session tokens
	Issuer    string        // Optional: issuer claim for tokens (default: authd)
	TokenTTL  time.Duration // Optional: session token lifetime (default: 7 days)

	DatabaseFile string // Optional: path to SQLite database file (default: ./authd.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	SenderEmail string // Required: From address for transactional mail
	SenderName  string // Optional: From display name (default: RAD Tech)
	BrevoAPIKey string // Required: Brevo transactional mail API key

	Env                 string        // Environment (dev, staging, production) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// Local deployments keep their settings in a .env file; absence is fine.
	_ = godotenv.Load()

	return Config{
		JWTSecret: os.Getenv("JWT_SECRET"),
		Issuer:    getEnvOrDefault("AUTH_ISSUER", "authd"),
		TokenTTL:  getEnvDurationOrDefault("TOKEN_TTL", jwtx.DefaultSessionTTL),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "authd.db"),
		PepperFile:   getEnvOrDefault("PEPPER_FILE", "pepper"),

		SenderEmail: os.Getenv("SENDER_EMAIL"),
		SenderName:  getEnvOrDefault("SENDER_NAME", "RAD Tech"),
		BrevoAPIKey: os.Getenv("BREVO_API_KEY"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(value); err == nil {
		return d
	}

	return defaultValue
}
