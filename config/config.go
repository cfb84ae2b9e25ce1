package config

import (
	"os"
	"strings"
)

type Config struct {
	Port        string
	DatabaseURL string

	GeminiAPIKey string
	GeminiModel  string

	Auth0Domain   string
	Auth0Audience string
	JWTSecretKey  string

	CORSOrigins []string
}

// Load collects all environment configuration once at startup.
func Load() Config {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DB_URL"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),

		Auth0Domain:   os.Getenv("AUTH0_DOMAIN"),
		Auth0Audience: os.Getenv("AUTH0_AUDIENCE"),
		JWTSecretKey:  os.Getenv("JWT_SECRET_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // fallback port for local development
	}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg
}
