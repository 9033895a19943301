package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8480", cfg.Server.Addr())
	require.Equal(t, "https://s3.amazonaws.com", cfg.Signing.Endpoint)
	require.Equal(t, "us-east-1", cfg.Signing.Region)
	require.Equal(t, "virtual-host", cfg.Signing.URLStyle)
	require.Equal(t, 15*time.Minute, cfg.Signing.DefaultExpiry)
	require.Equal(t, time.Second, cfg.Signing.MinExpiry)
	require.Equal(t, 7*24*time.Hour, cfg.Signing.MaxExpiry)
	require.Equal(t, "sqlite", cfg.Keystore.Driver)
	require.Equal(t, "WAL", cfg.Keystore.JournalMode)
	require.Equal(t, time.Minute, cfg.Keystore.CacheTTL)
	require.Equal(t, "info", cfg.Logging.Level)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PRESIGN_SERVER_PORT", "9999")
	t.Setenv("PRESIGN_SIGNING_REGION", "eu-west-1")
	t.Setenv("PRESIGN_KEYSTORE_DRIVER", "postgres")
	t.Setenv("PRESIGN_KEYSTORE_HOST", "db.internal")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, "eu-west-1", cfg.Signing.Region)
	require.Equal(t, "postgres", cfg.Keystore.Driver)
	require.Equal(t, "db.internal", cfg.Keystore.Host)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8081
signing:
  endpoint: http://minio:9000
  url_style: path
  default_expiry: 1h
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8081, cfg.Server.Port)
	require.Equal(t, "http://minio:9000", cfg.Signing.Endpoint)
	require.Equal(t, "path", cfg.Signing.URLStyle)
	require.Equal(t, time.Hour, cfg.Signing.DefaultExpiry)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad url style", map[string]string{"PRESIGN_SIGNING_URL_STYLE": "dns"}, "url_style"},
		{"bad port", map[string]string{"PRESIGN_SERVER_PORT": "0"}, "server.port"},
		{"bad driver", map[string]string{"PRESIGN_KEYSTORE_DRIVER": "redis"}, "keystore.driver"},
		{"bad level", map[string]string{"PRESIGN_LOGGING_LEVEL": "loud"}, "logging.level"},
		{"expiry too long", map[string]string{"PRESIGN_SIGNING_MAX_EXPIRY": "200h"}, "max_expiry"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestKeystoreDSN(t *testing.T) {
	cfg := KeystoreConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "presign",
		Password: "hunter2",
		Database: "presign",
		SSLMode:  "require",
	}
	require.Equal(t,
		"host=db.internal port=5432 user=presign password=hunter2 dbname=presign sslmode=require",
		cfg.DSN())
}

func TestGetMasterKey(t *testing.T) {
	cfg := KeystoreConfig{MasterKey: strings.Repeat("ab", 32)}
	key, err := cfg.GetMasterKey()
	require.NoError(t, err)
	require.Len(t, key, 32)

	_, err = KeystoreConfig{MasterKey: "not-hex"}.GetMasterKey()
	require.Error(t, err)

	_, err = KeystoreConfig{MasterKey: "abcd"}.GetMasterKey()
	require.Error(t, err)
}
