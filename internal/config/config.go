package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Auth struct {
	SigningKey  string
	TokenTTL    time.Duration
	RememberTTL time.Duration
}

type Session struct {
	CookieName string
	Secure     bool
}

type Config struct {
	Port     string
	DBPath   string
	LogLevel string
	Auth     Auth
	Session  Session
	// FeedInterval is the default push interval of the live campaign board.
	FeedInterval time.Duration
}

const envPrefix = "FORUM"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("auth.remember_ttl", 30*24*time.Hour)
	v.SetDefault("session.cookie_name", "forum_session")
	v.SetDefault("session.secure", false)
	v.SetDefault("feed.interval", 2*time.Second)
}

// Load reads configName (without extension) from dir, then applies FORUM_* environment overrides,
// e.g. FORUM_AUTH_SIGNING_KEY. A missing config file is fine; defaults and env still apply.
func Load(dir, configName string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		DBPath:   v.GetString("db.path"),
		LogLevel: v.GetString("log.level"),
		Auth: Auth{
			SigningKey:  v.GetString("auth.signing_key"),
			TokenTTL:    v.GetDuration("auth.token_ttl"),
			RememberTTL: v.GetDuration("auth.remember_ttl"),
		},
		Session: Session{
			CookieName: v.GetString("session.cookie_name"),
			Secure:     v.GetBool("session.secure"),
		},
		FeedInterval: v.GetDuration("feed.interval"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return errors.New("auth.signing_key is required (set FORUM_AUTH_SIGNING_KEY)")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Auth.RememberTTL < c.Auth.TokenTTL {
		return fmt.Errorf("auth.remember_ttl (%s) must not be shorter than auth.token_ttl (%s)",
			c.Auth.RememberTTL, c.Auth.TokenTTL)
	}
	if c.Session.CookieName == "" {
		return errors.New("session.cookie_name must not be empty")
	}
	return nil
}
