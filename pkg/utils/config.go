package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration

	// Owner account bootstrapped at startup. When OwnerPassword is empty
	// the API runs without auth (dev mode) and mutating routes are open.
	OwnerUsername string
	OwnerEmail    string
	OwnerPassword string
}

func (c AuthConfig) OwnerConfigured() bool {
	return c.OwnerPassword != ""
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("CHRONOMAP_JWT_SECRET")
	if secret == "" {
		// dev default (change for production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("CHRONOMAP_JWT_ISSUER")
	if issuer == "" {
		issuer = "chronomap"
	}

	duration := 24 * time.Hour
	if ttl := os.Getenv("CHRONOMAP_JWT_TTL_HOURS"); ttl != "" {
		if h, err := strconv.Atoi(ttl); err == nil && h > 0 {
			duration = time.Duration(h) * time.Hour
		}
	}

	username := os.Getenv("CHRONOMAP_OWNER_USERNAME")
	if username == "" {
		username = "owner"
	}
	email := os.Getenv("CHRONOMAP_OWNER_EMAIL")
	if email == "" {
		email = "owner@localhost"
	}

	return AuthConfig{
		JWTSecret:     secret,
		JWTIssuer:     issuer,
		JWTDuration:   duration,
		OwnerUsername: username,
		OwnerEmail:    email,
		OwnerPassword: os.Getenv("CHRONOMAP_OWNER_PASSWORD"),
	}
}

type ServerConfig struct {
	Addr string
	Env  string // "development" or "production"
}

func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("CHRONOMAP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("CHRONOMAP_ENV")
	if env == "" {
		env = "development"
	}

	return ServerConfig{Addr: addr, Env: env}
}
