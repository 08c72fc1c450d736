// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the edunex CLI, a client for the
// Edunex study-resource service: list and search the shared resource
// library, add new resources, request AI summaries, and keep an offline
// copy of the library for when the backend is unreachable.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edunex/study-engine/internal/api"
	"github.com/edunex/study-engine/internal/library"
	"github.com/edunex/study-engine/internal/secrets"
	"github.com/edunex/study-engine/pkg/types"
)

const (
	defaultBaseURL   = "http://localhost:8000"
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "study-engine/0.1"
	defaultCacheDir  = ".edunex"
	defaultMaxItems  = 20
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API tokens loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the edunex CLI.
var rootCmd = &cobra.Command{
	Use:   "edunex",
	Short: "Client for the Edunex study-resource library",
	Long: `edunex is a command-line client for the Edunex study-resource service.
It lists and searches the shared resource library, adds new text notes,
links, and file uploads, requests AI summaries, and keeps an offline
SQLite copy of the library so a dead network still shows something.

Each operation is a subcommand: list, search, add, summarize, remove,
and export.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./edunex.yaml or ~/.config/edunex/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "Edunex API base URL (default http://localhost:8000)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("edunex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "edunex"))
		}
	}

	viper.SetEnvPrefix("EDUNEX")
	viper.AutomaticEnv()

	viper.SetDefault("client.base_url", defaultBaseURL)
	viper.SetDefault("client.timeout", defaultTimeout)
	viper.SetDefault("client.user_agent", defaultUserAgent)
	viper.SetDefault("library.cache_dir", defaultCacheDir)
	viper.SetDefault("library.max_results", defaultMaxItems)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// appConfig resolves the effective configuration from viper, env, and
// the persistent flags.
func appConfig(cmd *cobra.Command) types.AppConfig {
	cfg := types.AppConfig{
		Client: types.ClientConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("client.timeout"),
				UserAgent: viper.GetString("client.user_agent"),
			},
			BaseURL: viper.GetString("client.base_url"),
		},
		Library: types.LibraryConfig{
			CacheDir:   viper.GetString("library.cache_dir"),
			MaxResults: viper.GetInt("library.max_results"),
		},
		Upload: types.UploadConfig{
			DefaultSubject: viper.GetString("upload.default_subject"),
		},
		Profile: types.ProfileConfig{
			Name: viper.GetString("profile.name"),
		},
	}

	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		cfg.Client.BaseURL = baseURL
	}
	return cfg
}

// newClient builds the API client with the token from .secrets/, if any.
// An empty token is valid: the backend serves public resources anonymously.
func newClient(cfg types.AppConfig) *api.Client {
	return api.New(cfg.Client, loadedSecrets[secrets.APITokenKey])
}

// newLibrary builds the library controller backed by the API client and
// the offline cache. A cache that fails to open disables offline
// fallback but never blocks the live path.
func newLibrary(cfg types.AppConfig, client *api.Client) (*library.Controller, func()) {
	cache, err := library.OpenCache(cfg.Library)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: offline cache unavailable: %v\n", err)
		return library.NewController(client, cfg.Profile.Name, nil), func() {}
	}
	return library.NewController(client, cfg.Profile.Name, cache), func() { cache.Close() }
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
