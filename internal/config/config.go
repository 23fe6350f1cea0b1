package config

import (
	"fmt"
	"os"
	"time"
)

// GroqConfig holds the chat-completion API settings. BaseURL is overridable so
// tests can point the client at a local server.
type GroqConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func LoadGroq() GroqConfig {
	cfg := GroqConfig{
		APIKey:  os.Getenv("GROQ_API_KEY"),
		BaseURL: os.Getenv("GROQ_BASE_URL"),
		Model:   os.Getenv("GROQ_MODEL"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama-3.3-70b-versatile"
	}
	return cfg
}

// AdminConfig is the fixed credential pair guarding the admin surface.
type AdminConfig struct {
	Email      string
	Password   string
	SessionTTL time.Duration
}

func LoadAdmin() (AdminConfig, error) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		return AdminConfig{}, fmt.Errorf("ADMIN_EMAIL environment variable is required")
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return AdminConfig{}, fmt.Errorf("ADMIN_PASSWORD environment variable is required")
	}
	return AdminConfig{
		Email:      email,
		Password:   password,
		SessionTTL: 12 * time.Hour,
	}, nil
}

// PlatformConfig carries deployment-URL and storage settings.
type PlatformConfig struct {
	Domain  string // suffix for application URLs, e.g. "deployhub.app"
	DataDir string // local directory for uploaded artifacts and shared files
}

func LoadPlatform() PlatformConfig {
	cfg := PlatformConfig{
		Domain:  os.Getenv("PLATFORM_DOMAIN"),
		DataDir: os.Getenv("DATA_DIR"),
	}
	if cfg.Domain == "" {
		cfg.Domain = "deployhub.app"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return cfg
}
