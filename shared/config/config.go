package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Backend  Backend  `yaml:"backend"`
	Frontend Frontend `yaml:"frontend"`
	Logging  Logging  `yaml:"logging"`
}

type Backend struct {
	Port           string   `yaml:"port"`
	UploadDir      string   `yaml:"upload_dir"`
	PageLimit      int      `yaml:"page_limit"`       // default page size for GET /api/messages
	MaxPageLimit   int      `yaml:"max_page_limit"`   // hard cap on client-supplied limit
	MaxUploadBytes int64    `yaml:"max_upload_bytes"` // multipart form memory limit
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Frontend struct {
	Port         string `yaml:"port"`
	APIBaseURL   string `yaml:"api_base_url"`
	OverlayDB    string `yaml:"overlay_db"`
	TemplatesDir string `yaml:"templates_dir"`
}

type Logging struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// MustLoad reads and parses the yaml config file, panicking on any failure.
// Missing fields fall back to defaults.
func MustLoad(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(configFile, &cfg); err != nil {
		panic("can't unmarshal config file")
	}
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Backend.Port == "" {
		c.Backend.Port = "3001"
	}
	if c.Backend.UploadDir == "" {
		c.Backend.UploadDir = "uploads"
	}
	if c.Backend.PageLimit <= 0 {
		c.Backend.PageLimit = 10
	}
	if c.Backend.MaxPageLimit <= 0 {
		c.Backend.MaxPageLimit = 50
	}
	if c.Backend.MaxUploadBytes <= 0 {
		c.Backend.MaxUploadBytes = 10 << 20 // 10 MB
	}
	if len(c.Backend.AllowedOrigins) == 0 {
		c.Backend.AllowedOrigins = []string{"*"}
	}
	if c.Frontend.Port == "" {
		c.Frontend.Port = "8081"
	}
	if c.Frontend.APIBaseURL == "" {
		c.Frontend.APIBaseURL = "http://localhost:3001"
	}
	if c.Frontend.OverlayDB == "" {
		c.Frontend.OverlayDB = "overlay.db"
	}
	if c.Frontend.TemplatesDir == "" {
		c.Frontend.TemplatesDir = "frontend/templates"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
