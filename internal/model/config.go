package model

import "time"

// Config holds every tunable setting. Field tags double as viper keys.
type Config struct {
	Extract      ExtractConfig      `yaml:"extract" mapstructure:"extract"`
	Ingest       IngestConfig       `yaml:"ingest" mapstructure:"ingest"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// ExtractConfig controls statement recognition
type ExtractConfig struct {
	UnicodeNormalize bool `yaml:"unicode_normalize" mapstructure:"unicode_normalize"` // NFKC before scanning
}

// IngestConfig controls how documents are turned into text
type IngestConfig struct {
	MaxPages int   `yaml:"max_pages" mapstructure:"max_pages"` // PDF pages to read, 0 = all
	MaxBytes int64 `yaml:"max_bytes" mapstructure:"max_bytes"` // Largest document accepted
}

// CacheConfig controls the document text cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"` // Empty = user cache dir
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch workers
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles document reads per directory during batches
type RateLimitingConfig struct {
	ReadsPerSecond float64 `yaml:"reads_per_second" mapstructure:"reads_per_second"` // 0 = unlimited
	BurstSize      int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // line, json, yaml
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

const (
	FormatLine = "line"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			UnicodeNormalize: true,
		},
		Ingest: IngestConfig{
			MaxPages: 3, // Statements live in section 2, always on the first pages
			MaxBytes: 50 * 1024 * 1024,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			ReadsPerSecond: 0,
			BurstSize:      5,
		},
		Output: OutputConfig{
			Format: FormatLine,
		},
	}
}
