package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	// External identity provider (OAuth2 code flow). Token issuance is the
	// provider's job; we only redirect, exchange and read the user profile.
	IDPClientID     string `mapstructure:"IDP_CLIENT_ID"`
	IDPClientSecret string `mapstructure:"IDP_CLIENT_SECRET"`
	IDPRedirectURL  string `mapstructure:"IDP_REDIRECT_URL"`
	IDPAuthURL      string `mapstructure:"IDP_AUTH_URL"`
	IDPTokenURL     string `mapstructure:"IDP_TOKEN_URL"`
	IDPUserInfoURL  string `mapstructure:"IDP_USERINFO_URL"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`

	// Timeouts are explicit knobs rather than inferred defaults.
	ReadTimeoutSeconds  int `mapstructure:"READ_TIMEOUT_SECONDS"`
	WriteTimeoutSeconds int `mapstructure:"WRITE_TIMEOUT_SECONDS"`
	IDPTimeoutSeconds   int `mapstructure:"IDP_TIMEOUT_SECONDS"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "registry.db")
	viper.SetDefault("IDP_REDIRECT_URL", "http://127.0.0.1:8080/auth/callback")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:3000/")
	viper.SetDefault("READ_TIMEOUT_SECONDS", 15)
	viper.SetDefault("WRITE_TIMEOUT_SECONDS", 30)
	viper.SetDefault("IDP_TIMEOUT_SECONDS", 10)

	viper.BindEnv("IDP_CLIENT_ID")
	viper.BindEnv("IDP_CLIENT_SECRET")
	viper.BindEnv("IDP_REDIRECT_URL")
	viper.BindEnv("IDP_AUTH_URL")
	viper.BindEnv("IDP_TOKEN_URL")
	viper.BindEnv("IDP_USERINFO_URL")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	viper.BindEnv("READ_TIMEOUT_SECONDS")
	viper.BindEnv("WRITE_TIMEOUT_SECONDS")
	viper.BindEnv("IDP_TIMEOUT_SECONDS")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c *Config) IDPTimeout() time.Duration {
	return time.Duration(c.IDPTimeoutSeconds) * time.Second
}
