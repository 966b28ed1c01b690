// Package config resolves runtime settings: server options from viper and
// path expansion for configured file locations.
package config

import (
	"fmt"
	"strings"

	"github.com/introflow/replybrain/internal/common"
	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// LoadServerConfig loads HTTP server configuration from Viper (config file
// or REPLYBRAIN_ env vars), falling back to defaults suitable for local use.
func LoadServerConfig() (ServerConfig, error) {
	cfg := ServerConfig{
		Addr:           ":8714",
		AllowedOrigins: []string{"*"},
	}

	if v := viper.GetString("server.addr"); v != "" {
		cfg.Addr = v
	}
	if v := viper.GetStringSlice("server.allowed_origins"); len(v) > 0 {
		cfg.AllowedOrigins = v
	}

	if !strings.Contains(cfg.Addr, ":") {
		return ServerConfig{}, fmt.Errorf(
			"server.addr %q wants host:port or :port: %w", cfg.Addr, common.ErrInvalidConfig)
	}

	return cfg, nil
}
