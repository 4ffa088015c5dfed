package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string `mapstructure:"BLOG_ENV"`
	Port     string `mapstructure:"PORT"`
	BasePath string `mapstructure:"BLOG_BASE_PATH"`

	DBDriver   string `mapstructure:"BLOG_DB_DRIVER"` // "postgres" or "sqlite"
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`
	SQLitePath string `mapstructure:"BLOG_SQLITE_PATH"`

	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	SessionTTL        time.Duration `mapstructure:"BLOG_SESSION_TTL"`
	SessionCookieName string        `mapstructure:"BLOG_SESSION_COOKIE"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitRPM       int      `mapstructure:"BLOG_RATE_LIMIT_RPM"`

	PostsPerPage           int  `mapstructure:"BLOG_POSTS_PER_PAGE"`
	ProfilePostsLimit      int  `mapstructure:"BLOG_PROFILE_POSTS_LIMIT"`
	CommentRequiresVisible bool `mapstructure:"BLOG_COMMENT_REQUIRES_VISIBLE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("BLOG_ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("BLOG_BASE_PATH", "")
	v.SetDefault("BLOG_DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "blogicum")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("BLOG_SQLITE_PATH", "blogicum.db")
	v.SetDefault("JWT_SECRET", "default-secret")
	v.SetDefault("BLOG_SESSION_TTL", "24h")
	v.SetDefault("BLOG_SESSION_COOKIE", "blogicum_session")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:8080")
	v.SetDefault("BLOG_RATE_LIMIT_RPM", 300)
	v.SetDefault("BLOG_POSTS_PER_PAGE", 10)
	v.SetDefault("BLOG_PROFILE_POSTS_LIMIT", 10)
	v.SetDefault("BLOG_COMMENT_REQUIRES_VISIBLE", false)

	if origins := v.GetString("CORS_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		v.Set("CORS_ALLOWED_ORIGINS", parts)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.BasePath = strings.TrimSuffix(cfg.BasePath, "/")

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid BLOG_DB_DRIVER %q (must be postgres or sqlite)", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProd() && c.JWTSecret == "default-secret" {
		return fmt.Errorf("JWT_SECRET must be set in prod")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("BLOG_SESSION_TTL must be positive")
	}
	if c.PostsPerPage <= 0 {
		return fmt.Errorf("BLOG_POSTS_PER_PAGE must be positive")
	}
	if c.ProfilePostsLimit <= 0 {
		return fmt.Errorf("BLOG_PROFILE_POSTS_LIMIT must be positive")
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("BLOG_BASE_PATH must start with /")
	}
	return nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// Default returns the configuration used when no environment is present.
// Tests build on it and override what they need.
func Default() *Config {
	return &Config{
		Env:                "dev",
		Port:               "8080",
		DBDriver:           "sqlite",
		SQLitePath:         "file::memory:",
		JWTSecret:          "default-secret",
		SessionTTL:         24 * time.Hour,
		SessionCookieName:  "blogicum_session",
		CORSAllowedOrigins: []string{"http://localhost:8080"},
		RateLimitRPM:       300,
		PostsPerPage:       10,
		ProfilePostsLimit:  10,
	}
}
