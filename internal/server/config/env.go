package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAddr          = "TODO_ADDR"
	EnvDatabaseDSN   = "TODO_DATABASE_DSN"
	EnvSecretKey     = "TODO_SECRET_KEY"
	EnvTokenTTL      = "TODO_TOKEN_TTL"
	EnvLogBackend    = "TODO_LOG_BACKEND"
	EnvAllowedOrigin = "TODO_ALLOWED_ORIGIN"
	EnvSeedTodos     = "TODO_SEED_TODOS"
)

type lookupFunc func(key string) (string, bool)

// envLookup resolves variables from the process environment first and from
// the dotenv file second. A missing dotenv file is not an error.
func envLookup(dotEnvPath string) lookupFunc {
	dotenv, err := godotenv.Read(dotEnvPath)
	if err != nil {
		dotenv = map[string]string{}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

func parseEnv(cfg *Config, lookup lookupFunc) error {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.EndpointAddrHTTP = v
	}
	if v, ok := lookup(EnvDatabaseDSN); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := lookup(EnvSecretKey); ok && v != "" {
		cfg.SecretKey = v
	}
	if v, ok := lookup(EnvTokenTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTokenTTL, err)
		}
		cfg.AccessTokenValidityDuration = d
	}
	if v, ok := lookup(EnvLogBackend); ok && v != "" {
		cfg.LogBackend = v
	}
	if v, ok := lookup(EnvAllowedOrigin); ok && v != "" {
		cfg.AllowedOrigin = v
	}
	if v, ok := lookup(EnvSeedTodos); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeedTodos, err)
		}
		cfg.SeedTodos = b
	}
	return nil
}
