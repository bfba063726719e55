package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`
	PostgresConn       string        `mapstructure:"POSTGRES_CONN"`
	PostgresUser       string        `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass       string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost       string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort       string        `mapstructure:"POSTGRES_PORT"`
	PostgresDB         string        `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL       string        `mapstructure:"MIGRATION_URL"`
	JWTSecret          string        `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int           `mapstructure:"JWT_EXPIRATION_HOURS"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	CookieSecure       bool          `mapstructure:"COOKIE_SECURE"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":       "0.0.0.0:8080",
	"POSTGRES_CONN":        "",
	"POSTGRES_USERNAME":    "",
	"POSTGRES_PASSWORD":    "",
	"POSTGRES_HOST":        "",
	"POSTGRES_PORT":        "5432",
	"POSTGRES_DATABASE":    "",
	"MIGRATION_URL":        "file://migrations",
	"JWT_SECRET":           "",
	"JWT_EXPIRATION_HOURS": 24 * 365,
	"CORS_ALLOWED_ORIGINS": "http://localhost:5173",
	"COOKIE_SECURE":        false,
	"REQUEST_TIMEOUT":      "5s",
}

// LoadConfig загружает конфигурацию из файла app.env в path.
// Переменные окружения переопределяют значения из файла; сам файл не обязателен.
func LoadConfig(path string) (cfg Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
	}
	if err = v.Unmarshal(&cfg); err != nil {
		return
	}
	err = cfg.Validate()
	return
}

// Validate проверяет обязательные значения.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.JWTExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.JWTExpirationHours)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got: %s", c.RequestTimeout)
	}
	return nil
}

// TokenTTL возвращает срок жизни токена.
func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTExpirationHours) * time.Hour
}
