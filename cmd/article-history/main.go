// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the article-history CLI.
// It resolves "Did You Know" records for articles, singly or in batches,
// and exports the stored results.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/article-history/internal/logging"
	"github.com/pdiddy/article-history/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// logger is built from the log.* config keys before any command runs.
var logger = zap.NewNop()

// rootCmd is the base command for the article-history CLI.
var rootCmd = &cobra.Command{
	Use:   "article-history",
	Short: "Resolve Did You Know records for ArticleHistory templates",
	Long: `article-history extracts "Did You Know" records from parsed DYK talk-page
templates and resolves each record's nomination page by probing the wiki.

Use dyk for a single template, batch for a YAML file of articles, and export
to write stored results to YAML or JSON.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./article-history.yaml or ~/.config/article-history/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "MediaWiki api.php endpoint")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, or error")
	viper.BindPFlag("wiki.api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// A missing .env is normal; variables may come from the environment.
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("article-history")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "article-history"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("ARTICLE_HISTORY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
