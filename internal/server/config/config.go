// Package config handles configuration for the todo server: defaults, an
// optional JSON or YAML file, TODO_* environment variables (with .env
// support) and command-line flags, applied in that order.
package config

import (
	"fmt"
	"os"
	"time"
)

// UserConfig is one entry of the static credential store.
type UserConfig struct {
	ID           int    `json:"id" yaml:"id"`
	UserName     string `json:"username" yaml:"username"`
	PasswordHash string `json:"password_hash" yaml:"password_hash"`
	Email        string `json:"email" yaml:"email"`
}

// Config holds runtime settings for the todo server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the REST API.
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing session JWTs (HS256).
//   - AccessTokenValidityDuration: session token lifetime.
//   - LogBackend: "slog" or "zap".
//   - AllowedOrigin: value of Access-Control-Allow-Origin for browser clients.
//   - SeedTodos: insert the two demo todos into an empty store at start.
//   - Users: the credential store; passwords are bcrypt hashes.
type Config struct {
	EndpointAddrHTTP            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogBackend                  string
	AllowedOrigin               string
	SeedTodos                   bool
	Users                       []UserConfig
}

// DefaultUser is the demo account; its password is "password123".
var DefaultUser = UserConfig{
	ID:           1,
	UserName:     "admin",
	PasswordHash: "$2a$10$vSTFgq9.JVG5I1AJ0olfLOk6dTIw32zhNuTyV9l.loHupYRmB3taq",
	Email:        "admin@example.com",
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside of local demos.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = "todo-demo-secret-change-me"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.LogBackend = "slog"
	c.AllowedOrigin = "*"
	c.SeedTodos = true
	c.Users = []UserConfig{DefaultUser}
}

// LoadConfig builds a Config from defaults, then overlays the config file
// named by -c/-config, the environment (.env included) and finally flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], ".env")
}

func load(args []string, dotEnvPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, envLookup(dotEnvPath)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.AccessTokenValidityDuration <= 0 {
		return nil, fmt.Errorf("access token validity must be positive, got %s", cfg.AccessTokenValidityDuration)
	}
	return cfg, nil
}
