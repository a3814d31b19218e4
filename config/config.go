package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	JWTSecretKey    string
	ServerPort      int
	Env             string
	SeedOnStartup   bool
	APIClientID     string
	APIClientSecret string
}

// Load reads configuration from the environment. A .env file is loaded
// when present; its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	seed := false
	if raw := os.Getenv("SEED_ON_STARTUP"); raw != "" {
		seed, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_ON_STARTUP environment variable: %w", err)
		}
	}

	// Development defaults; override both in any real deployment.
	clientID := os.Getenv("API_CLIENT_ID")
	if clientID == "" {
		clientID = "devClient"
	}
	clientSecret := os.Getenv("API_CLIENT_SECRET")
	if clientSecret == "" {
		clientSecret = "devSecret"
	}

	return &Config{
		DatabaseURL:     dbURL,
		JWTSecretKey:    jwtKey,
		ServerPort:      port,
		Env:             env,
		SeedOnStartup:   seed,
		APIClientID:     clientID,
		APIClientSecret: clientSecret,
	}, nil
}
