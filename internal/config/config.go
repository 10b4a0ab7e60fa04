package config

import (
	"os"
	"strings"
)

// Config holds everything the demo binary and the weblink relay read
// from the environment.
type Config struct {
	ListenAddr  string
	RedirectURL string

	ProviderID   string
	ClientID     string
	ClientSecret string
	Issuer       string
	AuthURL      string
	TokenURL     string
	Scopes       []string

	RedisAddr     string
	RedisPassword string
}

// Load reads the configuration from the environment. Missing values
// fall back to loopback defaults suitable for local sign-in.
func Load() Config {

	cfg := Config{

		ListenAddr:  getenv("AUTH_SDK_ADDR", "127.0.0.1:8765"),
		RedirectURL: getenv("AUTH_SDK_REDIRECT_URL", "http://127.0.0.1:8765/callback"),

		ProviderID:   getenv("AUTH_SDK_PROVIDER_ID", "google.com"),
		ClientID:     os.Getenv("AUTH_SDK_CLIENT_ID"),
		ClientSecret: os.Getenv("AUTH_SDK_CLIENT_SECRET"),
		Issuer:       os.Getenv("AUTH_SDK_ISSUER"),
		AuthURL:      os.Getenv("AUTH_SDK_AUTH_URL"),
		TokenURL:     os.Getenv("AUTH_SDK_TOKEN_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if raw := os.Getenv("AUTH_SDK_SCOPES"); raw != "" {
		cfg.Scopes = strings.Fields(raw)
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
