package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderRemotive = "remotive"
	ProviderCustom   = "custom"
	ProviderAdzuna   = "adzuna"

	MaxSyncLimit = 200
)

type Config struct {
	Port      string `mapstructure:"PORT"`
	AppEnv    string `mapstructure:"APP_ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RedisURL    string `mapstructure:"REDIS_URL"`
	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDB     string `mapstructure:"MONGO_DB"`

	CORSOrigin      string        `mapstructure:"CORS_ORIGIN"`
	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`

	Auth   AuthConfig       `mapstructure:",squash"`
	Jobs   JobsConfig       `mapstructure:",squash"`
	Custom CustomJobsConfig `mapstructure:",squash"`
	Adzuna AdzunaConfig     `mapstructure:",squash"`
}

type AuthConfig struct {
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	FirebaseProjectID string `mapstructure:"FIREBASE_PROJECT_ID"`
}

type JobsConfig struct {
	Provider          string `mapstructure:"JOBS_PROVIDER"`
	SyncLimit         int    `mapstructure:"JOBS_SYNC_LIMIT"`
	SyncCron          string `mapstructure:"JOBS_SYNC_CRON"`
	SyncRatePerMinute int    `mapstructure:"SYNC_RATE_PER_MINUTE"`
	RemotiveURL       string `mapstructure:"REMOTIVE_API_URL"`
}

type CustomJobsConfig struct {
	URL         string `mapstructure:"CUSTOM_JOBS_API_URL"`
	Method      string `mapstructure:"CUSTOM_JOBS_API_METHOD"`
	HeadersJSON string `mapstructure:"CUSTOM_JOBS_API_HEADERS_JSON"`
	ResultsPath string `mapstructure:"CUSTOM_JOBS_RESULTS_PATH"`
	SearchParam string `mapstructure:"CUSTOM_JOBS_SEARCH_PARAM"`
	LimitParam  string `mapstructure:"CUSTOM_JOBS_LIMIT_PARAM"`
}

// Headers decodes HeadersJSON. Malformed or non-object JSON yields no headers.
func (c CustomJobsConfig) Headers() map[string]string {
	out := map[string]string{}
	if strings.TrimSpace(c.HeadersJSON) == "" {
		return out
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(c.HeadersJSON), &raw); err != nil {
		return out
	}
	for k, v := range raw {
		out[k] = fmt.Sprint(v)
	}
	return out
}

type AdzunaConfig struct {
	AppID   string `mapstructure:"ADZUNA_APP_ID"`
	APIKey  string `mapstructure:"ADZUNA_API_KEY"`
	Country string `mapstructure:"ADZUNA_COUNTRY"`
	Page    int    `mapstructure:"ADZUNA_PAGE"`
	BaseURL string `mapstructure:"ADZUNA_API_URL"`
}

var defaults = map[string]any{
	"PORT":       "4000",
	"APP_ENV":    "development",
	"LOG_LEVEL":  "info",
	"LOG_FORMAT": "json",

	"DATABASE_URL": "",
	"REDIS_URL":    "",
	"MONGO_URI":    "",
	"MONGO_DB":     "career_compass",

	"CORS_ORIGIN":       "http://localhost:5173",
	"CATALOG_CACHE_TTL": "5m",

	"JWT_SECRET":          "",
	"FIREBASE_PROJECT_ID": "",

	"JOBS_PROVIDER":        ProviderRemotive,
	"JOBS_SYNC_LIMIT":      40,
	"JOBS_SYNC_CRON":       "",
	"SYNC_RATE_PER_MINUTE": 6,
	"REMOTIVE_API_URL":     "https://remotive.com/api/remote-jobs",

	"CUSTOM_JOBS_API_URL":          "",
	"CUSTOM_JOBS_API_METHOD":       "GET",
	"CUSTOM_JOBS_API_HEADERS_JSON": "{}",
	"CUSTOM_JOBS_RESULTS_PATH":     "jobs",
	"CUSTOM_JOBS_SEARCH_PARAM":     "search",
	"CUSTOM_JOBS_LIMIT_PARAM":      "limit",

	"ADZUNA_APP_ID":  "",
	"ADZUNA_API_KEY": "",
	"ADZUNA_COUNTRY": "us",
	"ADZUNA_PAGE":    1,
	"ADZUNA_API_URL": "https://api.adzuna.com/v1/api/jobs",
}

// Load reads configuration from the environment through v (a fresh viper
// instance when nil). Callers load .env files beforehand.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	// POSTGRES_URI is accepted for older deployments.
	if err := v.BindEnv("DATABASE_URL", "DATABASE_URL", "POSTGRES_URI"); err != nil {
		return nil, err
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Jobs.Provider = strings.ToLower(strings.TrimSpace(c.Jobs.Provider))
	c.Custom.Method = strings.ToUpper(strings.TrimSpace(c.Custom.Method))
	c.Adzuna.Country = strings.ToLower(strings.TrimSpace(c.Adzuna.Country))
	if c.Adzuna.Page < 1 {
		c.Adzuna.Page = 1
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DatabaseURL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if len(c.Auth.JWTSecret) < 12 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 12 characters"))
	}
	if c.Jobs.SyncLimit < 1 || c.Jobs.SyncLimit > MaxSyncLimit {
		errs = append(errs, fmt.Errorf("JOBS_SYNC_LIMIT must be between 1 and %d", MaxSyncLimit))
	}
	if !slices.Contains([]string{ProviderRemotive, ProviderCustom, ProviderAdzuna}, c.Jobs.Provider) {
		errs = append(errs, fmt.Errorf("JOBS_PROVIDER %q is not one of remotive, custom, adzuna", c.Jobs.Provider))
	}
	if c.Custom.Method != "GET" && c.Custom.Method != "POST" {
		errs = append(errs, errors.New("CUSTOM_JOBS_API_METHOD must be GET or POST"))
	}
	if c.Jobs.SyncRatePerMinute < 0 {
		errs = append(errs, errors.New("SYNC_RATE_PER_MINUTE must not be negative"))
	}
	if c.CatalogCacheTTL < 0 {
		errs = append(errs, errors.New("CATALOG_CACHE_TTL must not be negative"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}
