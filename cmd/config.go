package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tempmon_dashboard/internal/render"

	"github.com/spf13/viper"
)

// appConfig is the shape of configs/config.yml.
type appConfig struct {
	Port      string `mapstructure:"port"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	API struct {
		BaseURL      string        `mapstructure:"base_url"`
		AdminBaseURL string        `mapstructure:"admin_base_url"`
		HealthURL    string        `mapstructure:"health_url"`
		Token        string        `mapstructure:"token"`
		Timeout      time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`

	Session struct {
		Secret       string        `mapstructure:"secret"`
		TTL          time.Duration `mapstructure:"ttl"`
		CookieSecure bool          `mapstructure:"cookie_secure"`
	} `mapstructure:"session"`

	Dashboard struct {
		render.Thresholds `mapstructure:",squash"`
		RefreshInterval   time.Duration `mapstructure:"refresh_interval"`
		BannerTimeout     time.Duration `mapstructure:"banner_timeout"`
		ViewIdleTTL       time.Duration `mapstructure:"view_idle_ttl"`
		SweepInterval     time.Duration `mapstructure:"sweep_interval"`
	} `mapstructure:"dashboard"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("db.path", "tempmon.db")
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.admin_base_url", "http://localhost:8000")
	v.SetDefault("api.health_url", "http://localhost:8000/health")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "168h")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("dashboard.warning_threshold", 2.0)
	v.SetDefault("dashboard.critical_threshold", 5.0)
	v.SetDefault("dashboard.refresh_interval", "30s")
	v.SetDefault("dashboard.banner_timeout", "5s")
	v.SetDefault("dashboard.view_idle_ttl", "30m")
	v.SetDefault("dashboard.sweep_interval", "1s")
}

// loadConfig reads configs/config.yml when present and lets TEMPMON_*
// environment variables override any key (db.path -> TEMPMON_DB_PATH).
func loadConfig() (*appConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath("configs")
	v.SetConfigName("config")
	v.SetEnvPrefix("TEMPMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg appConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Session.Secret == "" {
		return nil, errors.New("session.secret is required (TEMPMON_SESSION_SECRET)")
	}
	return &cfg, nil
}
