// Package config loads service configuration from the environment. Each
// service builds its config struct once at process start and passes it down
// explicitly; there is no global settings object.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Backend holds the configuration for the user-management/auth service.
type Backend struct {
	ListenAddr  string `env:"BACKEND_ADDR" envDefault:":8000"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:globetrek.db?mode=rwc"`

	BackBaseURL  string `env:"BACK_BASE_URL" envDefault:"http://localhost:8000"`
	FrontBaseURL string `env:"FRONT_BASE_URL" envDefault:"http://localhost:3000"`

	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	ProjectID    string `env:"PROJECT_ID"`

	JWTSecret    string `env:"JWT_SECRET" envDefault:"TEST_SECRET_DO_NOT_USE_IN_PROD"`
	JWTAlgorithm string `env:"JWT_ALGORITHM" envDefault:"HS256"`

	// AccessTokenExpireMinutes defaults to eight days.
	AccessTokenExpireMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"11520"`

	ItemsPerUser int `env:"ITEMS_PER_USER" envDefault:"5"`
}

// TokenLifetime returns the access-token lifetime as a duration.
func (c Backend) TokenLifetime() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// OAuthCallbackURL is the redirect URI registered with the identity provider.
func (c Backend) OAuthCallbackURL() string {
	return c.BackBaseURL + "/oauth/callback"
}

// Gateway holds the configuration for the gateway service.
type Gateway struct {
	ListenAddr  string `env:"GATEWAY_ADDR" envDefault:":8888"`
	BackBaseURL string `env:"BACK_BASE_URL" envDefault:"http://localhost:8000"`
	APIBaseURL  string `env:"API_BASE_URL" envDefault:"http://localhost:3000"`
}

// LoadBackend parses the backend configuration from the environment.
func LoadBackend() (*Backend, error) {
	cfg := &Backend{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadGateway parses the gateway configuration from the environment.
func LoadGateway() (*Gateway, error) {
	cfg := &Gateway{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
