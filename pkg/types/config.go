// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "article-history/0.1"). Wikimedia asks for a contact address in it.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// WikiConfig holds settings for the MediaWiki query client.
type WikiConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIURL is the api.php endpoint (default https://en.wikipedia.org/w/api.php).
	APIURL string `json:"api_url" yaml:"api_url" mapstructure:"api_url"`

	// RequestsPerSecond caps the query rate across all goroutines (default 5).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// MaxRetries bounds retries on HTTP 429/503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// MaxLag is sent as the maxlag parameter when positive.
	MaxLag int `json:"max_lag,omitempty" yaml:"max_lag,omitempty" mapstructure:"max_lag"`
}

// BatchConfig holds settings for batch resolution.
type BatchConfig struct {
	// Concurrency is the number of articles resolved in parallel (default 4).
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// Force re-resolves articles already present in the store.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`
}

// StoreConfig holds settings for the resolution store.
type StoreConfig struct {
	// Dir is the directory holding the SQLite database and exports.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, or error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Development switches to the human-readable console encoder.
	Development bool `json:"development" yaml:"development" mapstructure:"development"`
}

// Config groups all settings read from article-history.yaml.
type Config struct {
	Wiki  WikiConfig  `json:"wiki" yaml:"wiki" mapstructure:"wiki"`
	Batch BatchConfig `json:"batch" yaml:"batch" mapstructure:"batch"`
	Store StoreConfig `json:"store" yaml:"store" mapstructure:"store"`
	Log   LogConfig   `json:"log" yaml:"log" mapstructure:"log"`
}
