package config

import (
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultEnv              = "dev"
	defaultDBPath           = "./dev.db"
	defaultPort             = "8080"
	defaultInventoryBaseURL = "https://api.ssactivewear.com"
	defaultInventoryTTL     = 15 * time.Minute
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string

	InventoryBaseURL  string
	InventoryUser     string
	InventoryAPIKey   string
	InventoryCacheTTL time.Duration
}

// IsDev reports whether the service runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "", "dev", "development", "local":
		return true
	}
	return false
}

// InventoryConfigured reports whether vendor credentials are present.
func (c Config) InventoryConfigured() bool {
	return c.InventoryUser != "" && c.InventoryAPIKey != ""
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production injects real environment variables.
	if err := loadDotEnv(".env"); err != nil {
		log.Printf("warning: %v", err)
	}

	cfg := Config{
		Env:              os.Getenv("ENV"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		DBPath:           os.Getenv("DB_PATH"),
		Port:             os.Getenv("PORT"),
		InventoryBaseURL: os.Getenv("INVENTORY_BASE_URL"),
		InventoryUser:    os.Getenv("INVENTORY_USER"),
		InventoryAPIKey:  os.Getenv("INVENTORY_API_KEY"),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.InventoryBaseURL == "" {
		cfg.InventoryBaseURL = defaultInventoryBaseURL
	}

	cfg.InventoryCacheTTL = defaultInventoryTTL
	if raw := os.Getenv("INVENTORY_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			log.Printf("warning: invalid INVENTORY_CACHE_TTL %q, using %s", raw, defaultInventoryTTL)
		} else {
			cfg.InventoryCacheTTL = ttl
		}
	}

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}
	if !cfg.InventoryConfigured() {
		log.Print("warning: INVENTORY_USER/INVENTORY_API_KEY not set, garment lookups are disabled")
	}

	return cfg
}
