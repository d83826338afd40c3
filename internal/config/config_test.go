package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hovertrans/backend/internal/config"
	"hovertrans/backend/internal/network"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOVERTRANS_DATA_DIR", dir)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:8787", cfg.Addr)
	require.Equal(t, filepath.Join(dir, "hovertrans.db"), cfg.DBPath)
	require.Equal(t, config.StoreSQLite, cfg.Store)
	require.Equal(t, config.TransportStandard, cfg.Transport)
	require.Equal(t, config.TranslatorGoogle, cfg.Translator)
	require.Equal(t, 15*time.Second, cfg.TranslateTimeout)
	require.Equal(t, "https://translate.googleapis.com", cfg.TranslateEndpoint)
	require.Equal(t, 16, cfg.Workers)
	require.Equal(t, "ko", cfg.Locale)
	require.Equal(t, []string{"chrome-extension://*", "moz-extension://*"}, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOVERTRANS_DATA_DIR", t.TempDir())
	t.Setenv("HOVERTRANS_DB_PATH", "/tmp/x/../custom.db")
	t.Setenv("HOVERTRANS_TRANSLATE_TIMEOUT", "3s")
	t.Setenv("HOVERTRANS_STORE", "redis")
	t.Setenv("HOVERTRANS_ALLOWED_ORIGINS", "http://localhost:3000")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom.db", cfg.DBPath)
	require.Equal(t, 3*time.Second, cfg.TranslateTimeout)
	require.Equal(t, config.StoreRedis, cfg.Store)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidStore(t *testing.T) {
	t.Setenv("HOVERTRANS_DATA_DIR", t.TempDir())
	t.Setenv("HOVERTRANS_STORE", "etcd")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported store")
}

func TestValidate(t *testing.T) {
	cfg := config.Config{Store: config.StoreSQLite, Translator: config.TranslatorGoogle, Transport: config.TransportBrowser, Workers: 1, NodeID: 1}
	require.NoError(t, cfg.Validate())

	cfg.Workers = 0
	require.Error(t, cfg.Validate())

	cfg.Workers = 1
	cfg.NodeID = 2048
	require.Error(t, cfg.Validate())

	cfg.NodeID = 1
	cfg.Transport = "carrier-pigeon"
	require.Error(t, cfg.Validate())

	cfg.Transport = config.TransportStandard
	cfg.Translator = "babelfish"
	require.Error(t, cfg.Validate())
}

func TestValidate_ProxyURL(t *testing.T) {
	cfg := config.Config{Store: config.StoreSQLite, Translator: config.TranslatorGoogle, Transport: config.TransportStandard, Workers: 1}

	cfg.ProxyURL = "socks5://127.0.0.1:1080"
	require.NoError(t, cfg.Validate())

	for _, bad := range []string{"://nope", "ftp://127.0.0.1:21", "http://", "127.0.0.1:3128"} {
		cfg.ProxyURL = bad
		err := cfg.Validate()
		require.ErrorIs(t, err, network.ErrInvalidProxy, bad)
	}
}

func TestFinalize_RecomputesDBPath(t *testing.T) {
	t.Setenv("HOVERTRANS_DATA_DIR", t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)

	other := t.TempDir()
	cfg.DataDir = other
	cfg.DBPath = ""
	cfg.StaticDir = other + "/assets/"
	require.NoError(t, cfg.Finalize())
	require.Equal(t, filepath.Join(other, "hovertrans.db"), cfg.DBPath)
	require.Equal(t, filepath.Join(other, "assets"), cfg.StaticDir)
}

func TestXDGDataDir(t *testing.T) {
	require.Equal(t, "hovertrans", filepath.Base(config.XDGDataDir()))
}
