package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvConfigPath, "PORT", "DB_PATH", "STATIC_PATH", "LOG_LEVEL", "LOG_FORMAT", "JWT_SECRET",
		"JWT_TTL", "DEFAULT_MONTHLY_BUDGET", "RECEIPT_BACKEND", "RECEIPT_DIR", "RECEIPT_BASE_URL",
		"S3_BUCKET", "S3_REGION", "S3_PREFIX", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"TRUSTED_PROXIES",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "disk", cfg.ReceiptBackend)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.DefaultMonthlyBudget.IsZero())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "careshare.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9090
db_path: /var/lib/careshare/care.db
log_level: debug
jwt_secret: from-the-file-0123456
jwt_ttl: 2h
default_monthly_budget: 2000
receipts:
  backend: s3
  s3:
    bucket: care-receipts
    region: eu-west-1
rate_limit:
  rps: 5
  burst: 10
  trusted_proxies: [10.0.0.0/8]
`), 0600))

	t.Setenv("PORT", "7070")
	t.Setenv("DEFAULT_MONTHLY_BUDGET", "1500.50")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port, "env beats file")
	assert.Equal(t, "/var/lib/careshare/care.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "1500.50", cfg.DefaultMonthlyBudget.StringFixed(2))
	assert.Equal(t, "s3", cfg.ReceiptBackend)
	assert.Equal(t, "care-receipts", cfg.S3Bucket)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxies)
}

func TestTrustedProxies(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies, "no proxy is trusted by default")

	t.Setenv("TRUSTED_PROXIES", "127.0.0.1, 10.0.0.0/8")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1", "10.0.0.0/8"}, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "not-a-network")
	_, err = Load("")
	require.Error(t, err)
}

func TestLoadFromEnvConfigPath(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 6060\njwt_secret: file-secret-0123456789\n"), 0600))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Port)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"short secret", map[string]string{"JWT_SECRET": "short"}},
		{"bad port", map[string]string{"JWT_SECRET": testSecret, "PORT": "eighty"}},
		{"port out of range", map[string]string{"JWT_SECRET": testSecret, "PORT": "70000"}},
		{"bad log level", map[string]string{"JWT_SECRET": testSecret, "LOG_LEVEL": "loud"}},
		{"bad ttl", map[string]string{"JWT_SECRET": testSecret, "JWT_TTL": "forever"}},
		{"negative budget", map[string]string{"JWT_SECRET": testSecret, "DEFAULT_MONTHLY_BUDGET": "-1"}},
		{"s3 without bucket", map[string]string{"JWT_SECRET": testSecret, "RECEIPT_BACKEND": "s3"}},
		{"unknown backend", map[string]string{"JWT_SECRET": testSecret, "RECEIPT_BACKEND": "ftp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", testSecret)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
