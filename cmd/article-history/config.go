// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/article-history/internal/secrets"
	"github.com/pdiddy/article-history/internal/wiki"
	"github.com/pdiddy/article-history/pkg/types"
)

const defaultUserAgent = "article-history/0.1"

// setDefaults registers every config key so environment overrides apply to
// keys absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("wiki.api_url", "")
	v.SetDefault("wiki.timeout", 30*time.Second)
	v.SetDefault("wiki.user_agent", defaultUserAgent)
	v.SetDefault("wiki.requests_per_second", 5.0)
	v.SetDefault("wiki.max_retries", 5)
	v.SetDefault("wiki.max_lag", 0)
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.force", false)
	v.SetDefault("store.dir", "data")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
}

// loadConfig decodes the merged flag/env/file/default settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// newWikiClient builds the query client, applying .secrets/ values that
// config did not set.
func newWikiClient(cfg types.WikiConfig) *wiki.Client {
	cfg.APIURL = loadedSecrets.Get(secrets.KeyWikiAPIURL, cfg.APIURL)
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	cfg.UserAgent = loadedSecrets.UserAgent(cfg.UserAgent)
	return wiki.NewClient(cfg, logger.Named("wiki"))
}
