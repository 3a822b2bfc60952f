package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/todoapp/internal/flagx"
	"github.com/dmitrijs2005/todoapp/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape shared by JSON and YAML config files.
// Durations accept "24h" style strings or integer nanoseconds.
type fileConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	LogBackend                  string         `json:"log_backend" yaml:"log_backend"`
	AllowedOrigin               string         `json:"allowed_origin" yaml:"allowed_origin"`
	SeedTodos                   *bool          `json:"seed_todos" yaml:"seed_todos"`
	Users                       []UserConfig   `json:"users" yaml:"users"`
}

// parseFile overlays cfg with the file given by -c/-config. The format is
// picked from the extension: .yaml/.yml is YAML, anything else JSON.
// Only keys present in the file override earlier values.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.EndpointAddrHTTP != "" {
		cfg.EndpointAddrHTTP = fc.EndpointAddrHTTP
	}
	if fc.DatabaseDSN != "" {
		cfg.DatabaseDSN = fc.DatabaseDSN
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.AccessTokenValidityDuration.Duration > 0 {
		cfg.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.LogBackend != "" {
		cfg.LogBackend = fc.LogBackend
	}
	if fc.AllowedOrigin != "" {
		cfg.AllowedOrigin = fc.AllowedOrigin
	}
	if fc.SeedTodos != nil {
		cfg.SeedTodos = *fc.SeedTodos
	}
	if len(fc.Users) > 0 {
		cfg.Users = fc.Users
	}
}
