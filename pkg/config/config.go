/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the exporter configuration from PYBEEMO_* environment
// variables. The env var names are kept compatible with earlier deployments.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "pybeemo"

// Cache backend names accepted in PYBEEMO_CACHE_BACKEND.
const (
	CacheBackendInMemory = "inmemory"
	CacheBackendRedis    = "redis"
)

type AppConfig struct {
	App       App
	Portal    Portal
	APIServer APIServerConfig
	Cache     CacheConfig
	Telemetry TelemetryConfig
}

type App struct {
	Name        string
	Version     string
	Environment string
}

// Portal holds the connection parameters for the backup-management portal.
// Interval is the refresh period in minutes.
type Portal struct {
	URL      string
	Username string
	Password string
	Interval int
}

type APIServerConfig struct {
	Port int
	CORS CORSConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type CacheConfig struct {
	Backend       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type TelemetryConfig struct {
	OTLPEndpoint string
	Insecure     bool
}

// Load reads the configuration from the environment, applying defaults for
// every optional value. Missing credentials are reported by Validate, not
// here, so callers can log them as a startup error.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("environment", "production")
	v.SetDefault("portal_url", "https://backup.beemotechnologie.com")
	v.SetDefault("interval", 30)
	v.SetDefault("port", 8000)
	v.SetDefault("cache_backend", CacheBackendInMemory)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cors_allowed_origins", "")
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("otlp_insecure", false)

	cfg := &AppConfig{
		App: App{
			Name:        "beemo-exporter",
			Version:     "dev",
			Environment: v.GetString("environment"),
		},
		Portal: Portal{
			URL:      strings.TrimRight(v.GetString("portal_url"), "/"),
			Username: v.GetString("user"),
			Password: v.GetString("password"),
			Interval: v.GetInt("interval"),
		},
		APIServer: APIServerConfig{
			Port: v.GetInt("port"),
			CORS: CORSConfig{
				AllowedOrigins: splitAndTrim(v.GetString("cors_allowed_origins")),
			},
		},
		Cache: CacheConfig{
			Backend:       v.GetString("cache_backend"),
			RedisAddr:     v.GetString("redis_addr"),
			RedisPassword: v.GetString("redis_password"),
			RedisDB:       v.GetInt("redis_db"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: v.GetString("otlp_endpoint"),
			Insecure:     v.GetBool("otlp_insecure"),
		},
	}

	return cfg, nil
}

// Validate reports fatal configuration problems. The error message names the
// offending environment variables so operators can fix them directly.
func (c *AppConfig) Validate() error {
	missing := make([]string, 0, 2)
	if c.Portal.Username == "" {
		missing = append(missing, "PYBEEMO_USER")
	}
	if c.Portal.Password == "" {
		missing = append(missing, "PYBEEMO_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.Portal.Interval <= 0 {
		return fmt.Errorf("PYBEEMO_INTERVAL must be a positive number of minutes, got %d", c.Portal.Interval)
	}
	if c.Cache.Backend != CacheBackendInMemory && c.Cache.Backend != CacheBackendRedis {
		return fmt.Errorf("unsupported cache backend %q", c.Cache.Backend)
	}
	return nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
