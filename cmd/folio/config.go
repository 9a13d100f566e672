package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
)

// loadConfig reads .env, then folio.yaml (or cfgFile), then FOLIO_*
// environment variables, later sources winning.
func loadConfig(cfgFile string) (folio.SiteConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return folio.SiteConfig{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("addr", ":3000")
	v.SetDefault("content_dir", "content")
	v.SetDefault("database_path", "data/folio.db")
	v.SetDefault("cache_ttl", content.DefaultTTL)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	for _, key := range []string{
		"name", "title", "description", "url", "author", "role", "bio",
		"email", "github", "linkedin", "tech_stack", "watch_content",
		"admin_password", "session_secret", "cookie_secure",
		"revalidate_token", "dev",
	} {
		if err := v.BindEnv(key); err != nil {
			return folio.SiteConfig{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return folio.SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg folio.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return folio.SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg.WithDefaults(), nil
}
