package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	API       APIConfig
	Catalog   CatalogConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

// APIConfig points at the remote movie API.
type APIConfig struct {
	BaseURL         string
	Resource        string
	Timeout         time.Duration
	RetryMaxElapsed time.Duration
}

type CatalogConfig struct {
	Genres     []string
	ListRoute  string
	NoPhotoURL string
}

type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// LoadConfig reads path (a .env file) when it exists and overlays the environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_NAME", "movie-catalog")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("API_BASE_URL", "http://localhost:3000")
	v.SetDefault("API_RESOURCE", "filmes")
	v.SetDefault("API_TIMEOUT_SECONDS", 10)
	v.SetDefault("API_RETRY_SECONDS", 5)
	v.SetDefault("GENRES", "")
	v.SetDefault("LIST_ROUTE", "/movies")
	v.SetDefault("NO_PHOTO_URL", "https://www2.camara.leg.br/atividade-legislativa/comissoes/comissoes-permanentes/cindra/imagens/sem.jpg.gif/image")
	v.SetDefault("SESSION_IDLE_MINUTES", 30)
	v.SetDefault("SESSION_SWEEP_SECONDS", 60)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	// Sized for a browser polling its session snapshot while editing.
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		API: APIConfig{
			BaseURL:         strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			Resource:        strings.Trim(v.GetString("API_RESOURCE"), "/"),
			Timeout:         time.Duration(v.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
			RetryMaxElapsed: time.Duration(v.GetInt("API_RETRY_SECONDS")) * time.Second,
		},
		Catalog: CatalogConfig{
			Genres:     SplitList(v.GetString("GENRES")),
			ListRoute:  "/" + strings.Trim(v.GetString("LIST_ROUTE"), "/"),
			NoPhotoURL: v.GetString("NO_PHOTO_URL"),
		},
		Session: SessionConfig{
			IdleTimeout:   time.Duration(v.GetInt("SESSION_IDLE_MINUTES")) * time.Minute,
			SweepInterval: time.Duration(v.GetInt("SESSION_SWEEP_SECONDS")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:     v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:   v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if config.API.BaseURL == "" {
		return nil, errors.New("API_BASE_URL is required")
	}
	if config.Session.IdleTimeout <= 0 {
		return nil, errors.New("SESSION_IDLE_MINUTES must be positive")
	}
	if config.Session.SweepInterval <= 0 {
		return nil, errors.New("SESSION_SWEEP_SECONDS must be positive")
	}
	if config.RateLimit.Enabled && (config.RateLimit.RPS <= 0 || config.RateLimit.Burst <= 0) {
		return nil, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return config, nil
}

// SplitList splits a comma separated value, dropping empty entries.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
