package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// DefaultAllowedOrigins lists the local front-ends allowed to talk to the API
// with credentials.
const DefaultAllowedOrigins = "http://localhost:2395,http://localhost:8275,http://localhost:6290"

// Config holds everything read from the environment at startup. It is built
// once in app.SetupAndRunApp and passed to constructors explicitly.
type Config struct {
	Port               string
	PostgresURI        string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AllowedOrigins     string
	MQTTURL            string
}

// Load reads the optional .env file and the process environment.
func Load() (*Config, error) {
	// .env is a convenience for local runs, absence is fine
	_ = godotenv.Load()

	cfg := &Config{
		Port:               os.Getenv("PORT"),
		PostgresURI:        os.Getenv("POSTGRESQL_URI"),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AllowedOrigins:     os.Getenv("CORS_ORIGINS"),
		MQTTURL:            os.Getenv("MQTT_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.AllowedOrigins == "" {
		cfg.AllowedOrigins = DefaultAllowedOrigins
	}

	if cfg.PostgresURI == "" {
		return nil, errors.New("you must set your 'POSTGRESQL_URI' environmental variable")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}

	return cfg, nil
}
