package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Mail         MailConfig
	Confirmation ConfirmationConfig
	RateLimit    RateLimitConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Enabled  bool
}

type ConfirmationConfig struct {
	ExpiryMinutes int
	Length        int
}

type RateLimitConfig struct {
	AuthPerMinute int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CONFIRMATION_EXPIRY_MINUTES", 15)
	viper.SetDefault("CONFIRMATION_CODE_LENGTH", 6)
	viper.SetDefault("MAIL_ENABLED", false)
	viper.SetDefault("EMAIL_FROM", "donotreply@mediareview.local")
	viper.SetDefault("AUTH_RATE_PER_MINUTE", 10)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Mail: MailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
			Enabled:  viper.GetBool("MAIL_ENABLED"),
		},
		Confirmation: ConfirmationConfig{
			ExpiryMinutes: viper.GetInt("CONFIRMATION_EXPIRY_MINUTES"),
			Length:        viper.GetInt("CONFIRMATION_CODE_LENGTH"),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: viper.GetInt("AUTH_RATE_PER_MINUTE"),
		},
	}

	return config, nil
}
