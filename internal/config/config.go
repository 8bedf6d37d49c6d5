package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	// Port is the HTTP server port.
	Port int

	// DatabasePath is the SQLite database file.
	DatabasePath string

	// GatewayURL is the message gateway's websocket endpoint. Empty
	// disables ingestion (useful with seeded data).
	GatewayURL string

	// Channels are the channel names to subscribe to.
	Channels []string

	// GeminiAPIKey authenticates against the inference service. Empty
	// disables the LLM path; keyword analysis is used instead.
	GeminiAPIKey string

	// GeminiModel overrides the default model when set.
	GeminiModel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	port := 8000
	if p := os.Getenv("PORT"); p != "" {
		var err error
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./tariqak.db"
	}

	channels := []string{"ahwalaltreq", "a7walstreet", "Palestine_Streets_Radar"}
	if cs := os.Getenv("CHANNELS"); cs != "" {
		channels = nil
		for _, ch := range strings.Split(cs, ",") {
			if ch = strings.TrimSpace(ch); ch != "" {
				channels = append(channels, ch)
			}
		}
	}

	return &Config{
		Port:         port,
		DatabasePath: dbPath,
		GatewayURL:   os.Getenv("GATEWAY_URL"),
		Channels:     channels,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
	}, nil
}
