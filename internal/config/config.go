package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ChatStorePostgres = "postgres"
	ChatStoreMongo    = "mongo"
)

// Config holds the configuration for the API server.
type Config struct {
	Port   string
	AppEnv string

	PostgresURL     string
	ChatStoreDriver string
	MongoURI        string
	MongoDatabase   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
	AIProvider   string

	OpenRouteAPIKey  string
	WikipediaBaseURL string

	AllowedOrigins        []string
	GenerateRatePerMinute int
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return NewFromEnv()
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL environment variable not set")
	}

	driver := strings.ToLower(getEnvWithDefault("CHAT_STORE_DRIVER", ChatStorePostgres))
	if driver != ChatStorePostgres && driver != ChatStoreMongo {
		return nil, fmt.Errorf("CHAT_STORE_DRIVER must be %q or %q, got %q", ChatStorePostgres, ChatStoreMongo, driver)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if driver == ChatStoreMongo && mongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}

	openAIKey := os.Getenv("OPENAI_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if openAIKey == "" && geminiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY or GEMINI_API_KEY environment variable must be set")
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	rate, err := getIntEnv("GENERATE_RATE_PER_MINUTE", 10)
	if err != nil {
		return nil, err
	}
	if rate < 1 {
		return nil, fmt.Errorf("GENERATE_RATE_PER_MINUTE must be positive")
	}

	provider := strings.ToLower(getEnvWithDefault("AI_PROVIDER", "gpt"))
	if provider == "gpt" && openAIKey == "" {
		provider = "gemini"
	}
	if provider == "gemini" && geminiKey == "" {
		provider = "gpt"
	}

	return &Config{
		Port:                  getEnvWithDefault("PORT", "8080"),
		AppEnv:                getEnvWithDefault("APP_ENV", "production"),
		PostgresURL:           postgresURL,
		ChatStoreDriver:       driver,
		MongoURI:              mongoURI,
		MongoDatabase:         getEnvWithDefault("MONGO_DATABASE", "vivubot"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               redisDB,
		JWTSecret:             os.Getenv("JWT_SECRET"),
		OpenAIAPIKey:          openAIKey,
		OpenAIModel:           getEnvWithDefault("OPENAI_MODEL", "gpt-4o"),
		GeminiAPIKey:          geminiKey,
		GeminiModel:           getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		AIProvider:            provider,
		OpenRouteAPIKey:       os.Getenv("OPENROUTE_API_KEY"),
		WikipediaBaseURL:      strings.TrimRight(getEnvWithDefault("WIKIPEDIA_BASE_URL", "https://vi.wikipedia.org"), "/"),
		AllowedOrigins:        splitList(getEnvWithDefault("ALLOWED_ORIGINS", "*")),
		GenerateRatePerMinute: rate,
	}, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
