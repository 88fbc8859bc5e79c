package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	if _, err := url.Parse(cfg.Crawler.SearchURL); err != nil {
		return fmt.Errorf("invalid crawler.search_url %q: %w", cfg.Crawler.SearchURL, err)
	}
	if cfg.Crawler.CardSelector == "" {
		return fmt.Errorf("crawler.card_selector must not be empty")
	}
	if cfg.Crawler.MaxPages < 1 {
		return fmt.Errorf("crawler.max_pages must be >= 1, got %d", cfg.Crawler.MaxPages)
	}
	if cfg.Crawler.RequestTimeout <= 0 {
		return fmt.Errorf("crawler.request_timeout must be > 0")
	}
	for _, rule := range cfg.Crawler.Fields {
		if rule.Name == "" {
			return fmt.Errorf("crawler field rule with empty name (selector %q)", rule.Selector)
		}
		if rule.Selector == "" {
			return fmt.Errorf("crawler field rule %q has empty selector", rule.Name)
		}
		if rule.Type != "" && rule.Type != "css" && rule.Type != "xpath" {
			return fmt.Errorf("crawler field rule %q: type must be 'css' or 'xpath', got %q", rule.Name, rule.Type)
		}
	}

	switch cfg.Storage.Backend {
	case "mongo":
		if cfg.Storage.MongoURI == "" {
			return fmt.Errorf("storage.mongo_uri must be set for the mongo backend")
		}
		if cfg.Storage.Database == "" || cfg.Storage.Collection == "" {
			return fmt.Errorf("storage.database and storage.collection must not be empty")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.backend must be 'mongo' or 'memory', got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.ImageDir == "" {
		return fmt.Errorf("storage.image_dir must not be empty")
	}

	switch cfg.AI.Provider {
	case "openai", "ollama", "custom":
	default:
		return fmt.Errorf("ai.provider must be 'openai', 'ollama' or 'custom', got %q", cfg.AI.Provider)
	}
	if cfg.AI.Provider == "custom" && cfg.AI.Endpoint == "" {
		return fmt.Errorf("ai.endpoint must be set for the custom provider")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level %q is not supported (valid: debug, info, warn, error)", cfg.Logging.Level)
	}

	return nil
}
