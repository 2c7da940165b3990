package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PYBEEMO_USER", "operator")
	t.Setenv("PYBEEMO_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "operator", cfg.Portal.Username)
	assert.Equal(t, "secret", cfg.Portal.Password)
	assert.Equal(t, 30, cfg.Portal.Interval)
	assert.Equal(t, 8000, cfg.APIServer.Port)
	assert.Equal(t, CacheBackendInMemory, cfg.Cache.Backend)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PYBEEMO_USER", "operator")
	t.Setenv("PYBEEMO_PASSWORD", "secret")
	t.Setenv("PYBEEMO_INTERVAL", "5")
	t.Setenv("PYBEEMO_PORT", "9090")
	t.Setenv("PYBEEMO_PORTAL_URL", "https://portal.example.com/")
	t.Setenv("PYBEEMO_CACHE_BACKEND", "redis")
	t.Setenv("PYBEEMO_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("PYBEEMO_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Portal.Interval)
	assert.Equal(t, 9090, cfg.APIServer.Port)
	// trailing slash is trimmed so export paths can be appended directly
	assert.Equal(t, "https://portal.example.com", cfg.Portal.URL)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Cache.RedisAddr)
	assert.Equal(t,
		[]string{"https://a.example.com", "https://b.example.com"},
		cfg.APIServer.CORS.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		pass    string
		wantErr string
	}{
		{
			name:    "missing both",
			wantErr: "PYBEEMO_USER, PYBEEMO_PASSWORD",
		},
		{
			name:    "missing password",
			user:    "operator",
			wantErr: "PYBEEMO_PASSWORD",
		},
		{
			name:    "missing user",
			pass:    "secret",
			wantErr: "PYBEEMO_USER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{
				Portal: Portal{Username: tt.user, Password: tt.pass, Interval: 30},
				Cache:  CacheConfig{Backend: CacheBackendInMemory},
			}
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_BadInterval(t *testing.T) {
	cfg := &AppConfig{
		Portal: Portal{Username: "u", Password: "p", Interval: 0},
		Cache:  CacheConfig{Backend: CacheBackendInMemory},
	}
	assert.ErrorContains(t, cfg.Validate(), "PYBEEMO_INTERVAL")
}

func TestValidate_BadCacheBackend(t *testing.T) {
	cfg := &AppConfig{
		Portal: Portal{Username: "u", Password: "p", Interval: 30},
		Cache:  CacheConfig{Backend: "memcached"},
	}
	assert.ErrorContains(t, cfg.Validate(), "unsupported cache backend")
}
