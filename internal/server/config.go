package server

import (
	"time"

	"github.com/agentstation/toolmap/internal/server/middleware"
	"github.com/agentstation/toolmap/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	Host string
	Port int

	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string

	// StatsCacheTTL caches /stats responses; zero disables caching.
	StatsCacheTTL time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           constants.DefaultHost,
		Port:           constants.DefaultPort,
		AllowedOrigins: middleware.ParseOrigins(constants.DefaultAllowedOrigins),
		StatsCacheTTL:  30 * time.Second,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    120 * time.Second,
	}
}
