package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Crawler.MaxPages != 3 {
		t.Errorf("max_pages = %d, want 3", cfg.Crawler.MaxPages)
	}
	if cfg.Crawler.DefaultKeyword != "파이썬" {
		t.Errorf("default_keyword = %q", cfg.Crawler.DefaultKeyword)
	}
	if cfg.Storage.Database != "book_db" || cfg.Storage.Collection != "kyobo_books" {
		t.Errorf("store target = %s/%s", cfg.Storage.Database, cfg.Storage.Collection)
	}
	if cfg.Storage.ImageDir != filepath.Join("images", "kyobo") {
		t.Errorf("image_dir = %q", cfg.Storage.ImageDir)
	}
	if len(cfg.Crawler.Fields) != 6 {
		t.Fatalf("expected 6 field rules, got %d", len(cfg.Crawler.Fields))
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookstalk.yaml")
	yaml := `
server:
  addr: ":9000"
crawler:
  max_pages: 5
storage:
  backend: memory
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Crawler.MaxPages != 5 {
		t.Errorf("max_pages = %d", cfg.Crawler.MaxPages)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	// Untouched sections keep their defaults.
	if cfg.Crawler.DefaultKeyword != "파이썬" {
		t.Errorf("default_keyword = %q", cfg.Crawler.DefaultKeyword)
	}
}

func TestLoadEnvAliases(t *testing.T) {
	t.Setenv("MONGODB", "mongodb://db.internal:27017")
	t.Setenv("API_KEY", "sk-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.MongoURI != "mongodb://db.internal:27017" {
		t.Errorf("mongo_uri = %q", cfg.Storage.MongoURI)
	}
	if cfg.AI.APIKey != "sk-test" {
		t.Errorf("api_key = %q", cfg.AI.APIKey)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"zero pages", func(c *Config) { c.Crawler.MaxPages = 0 }},
		{"empty card selector", func(c *Config) { c.Crawler.CardSelector = "" }},
		{"rule without selector", func(c *Config) { c.Crawler.Fields[0].Selector = "" }},
		{"rule with bad type", func(c *Config) { c.Crawler.Fields[0].Type = "regex" }},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }},
		{"mongo without uri", func(c *Config) { c.Storage.MongoURI = "" }},
		{"empty image dir", func(c *Config) { c.Storage.ImageDir = "" }},
		{"unknown provider", func(c *Config) { c.AI.Provider = "palm" }},
		{"custom without endpoint", func(c *Config) { c.AI.Provider = "custom"; c.AI.Endpoint = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
