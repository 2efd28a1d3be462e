package bootstrap

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	LogLevel   string
	Version    string

	HMACKey      []byte
	CookieSecure bool

	AdminUsername string
	AdminPassword string

	// GeminiAPIKey is deliberately not validated at startup; a missing key
	// surfaces when the first remote call is attempted.
	GeminiAPIKey string
	GeminiModel  string

	LiveModel    string
	LiveBaseURL  string
	LiveVoice    string
	Instructions string
}

const defaultInstructions = "You are a school operations advisor for a regional monitoring dashboard. " +
	"Answer questions about school conditions, attendance, and facilities briefly and concretely."

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Version:    getEnv("VERSION", "dev"),

		HMACKey:      []byte(getEnv("HMAC_KEY", "change-me-in-production")),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", ""),

		LiveModel:    getEnv("LIVE_MODEL", ""),
		LiveBaseURL:  getEnv("LIVE_BASE_URL", ""),
		LiveVoice:    getEnv("LIVE_VOICE", ""),
		Instructions: getEnv("SYSTEM_INSTRUCTIONS", defaultInstructions),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
