package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for bookstalk.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Crawler CrawlerConfig `mapstructure:"crawler" yaml:"crawler"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	AI      AIConfig      `mapstructure:"ai"      yaml:"ai"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// CrawlerConfig controls the search-results crawler.
type CrawlerConfig struct {
	SearchURL      string        `mapstructure:"search_url"      yaml:"search_url"`
	CardSelector   string        `mapstructure:"card_selector"   yaml:"card_selector"`
	Fields         []FieldRule   `mapstructure:"fields"          yaml:"fields"`
	MaxPages       int           `mapstructure:"max_pages"       yaml:"max_pages"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	Stealth        bool          `mapstructure:"stealth"         yaml:"stealth"`
	DefaultKeyword string        `mapstructure:"default_keyword" yaml:"default_keyword"`
}

// FieldRule defines how one book field is extracted from a card.
type FieldRule struct {
	Name      string `mapstructure:"name"      yaml:"name"`
	Selector  string `mapstructure:"selector"  yaml:"selector"`
	Type      string `mapstructure:"type"      yaml:"type"` // css, xpath
	Attribute string `mapstructure:"attribute" yaml:"attribute"`
}

// StorageConfig controls the document store and the cover image directory.
type StorageConfig struct {
	Backend    string `mapstructure:"backend"    yaml:"backend"` // mongo, memory
	MongoURI   string `mapstructure:"mongo_uri"  yaml:"mongo_uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
	ImageDir   string `mapstructure:"image_dir"  yaml:"image_dir"`
}

// AIConfig controls the recommendation model provider.
type AIConfig struct {
	Provider    string  `mapstructure:"provider"    yaml:"provider"` // openai, ollama, custom
	Model       string  `mapstructure:"model"       yaml:"model"`
	Endpoint    string  `mapstructure:"endpoint"    yaml:"endpoint"`
	APIKey      string  `mapstructure:"api_key"     yaml:"api_key"`
	MaxTokens   int     `mapstructure:"max_tokens"  yaml:"max_tokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with working defaults for the Kyobo
// search crawler.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8000",
		},
		Crawler: CrawlerConfig{
			SearchURL:    "https://search.kyobobook.co.kr/search",
			CardSelector: "#shopData_list > ul > li",
			Fields: []FieldRule{
				{Name: "title", Selector: "div.prod_name_group", Type: "css"},
				{Name: "author", Selector: "div.prod_author_info a", Type: "css"},
				{Name: "price", Selector: "span.price", Type: "css"},
				{Name: "publisher", Selector: "div.prod_publish > a", Type: "css"},
				{Name: "publication_date", Selector: "div.prod_publish > span.date", Type: "css"},
				{Name: "image", Selector: "img.prod_img_load", Type: "css", Attribute: "src"},
			},
			MaxPages:       3,
			RequestTimeout: 30 * time.Second,
			Stealth:        false,
			DefaultKeyword: "파이썬",
		},
		Storage: StorageConfig{
			Backend:    "mongo",
			MongoURI:   "mongodb://localhost:27017",
			Database:   "book_db",
			Collection: "kyobo_books",
			ImageDir:   "images/kyobo",
		},
		AI: AIConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			MaxTokens:   1024,
			Temperature: 0.7,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
