package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	Debug bool
	// GitHub API
	GitHubAPIURL string
	GitHubToken  string
	FrontendURL  string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Cache freshness windows
	ProfileCacheTTLSeconds int
	TreeCacheTTLSeconds    int
	// Ranking knobs
	TFIDFMaxFeatures    int
	RecommendationLimit int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),
		// Strip trailing slashes so URL joins never produce double slashes.
		GitHubAPIURL: strings.TrimRight(getEnv("GITHUB_API_URL", "https://api.github.com"), "/"),
		GitHubToken:  getEnv("GITHUB_TOKEN", ""),
		FrontendURL:  strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Redis Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 60),
		// Cache TTLs: 5 minutes for profiles, 10 minutes for repo trees
		ProfileCacheTTLSeconds: getEnvInt("PROFILE_CACHE_TTL_SECONDS", 300),
		TreeCacheTTLSeconds:    getEnvInt("TREE_CACHE_TTL_SECONDS", 600),
		// Ranking knobs
		TFIDFMaxFeatures:    getEnvInt("TFIDF_MAX_FEATURES", 500),
		RecommendationLimit: getEnvInt("RECOMMENDATION_LIMIT", 50),
	}

	if cfg.GitHubToken == "" {
		log.Println("WARNING: GITHUB_TOKEN is missing. Unauthenticated GitHub API rate limits apply.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Caching and rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
