package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults apply when nothing is set", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 5*time.Second, cfg.TxTimeout)
		assert.True(t, cfg.IsDev())
		assert.Empty(t, cfg.DatabaseURL)
	})

	t.Run("environment overrides yaml file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		path := filepath.Join(dir, "stargate.yaml")
		require.NoError(t, os.WriteFile(path, []byte("addr: \":9000\"\ncache_ttl: 10s\nseed: true\n"), 0o600))

		t.Setenv("STARGATE_CONFIG", path)
		t.Setenv("STARGATE_ADDR", ":9100")
		t.Setenv("STARGATE_CORS_ORIGINS", "http://a.test, http://b.test,http://a.test")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":9100", cfg.Addr)
		assert.Equal(t, 10*time.Second, cfg.CacheTTL)
		assert.True(t, cfg.Seed)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	})

	t.Run("broker list splits on commas", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("STARGATE_KAFKA_BROKERS", "k1:9092, k2:9092,,k1:9092")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	})

	t.Run("dotenv file is read", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STARGATE_LOG_LEVEL=debug\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("STARGATE_LOG_LEVEL") })

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	cfg.KafkaBrokers = []string{"localhost:9092"}
	cfg.KafkaTopic = ""
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Addr = " "
	assert.Error(t, cfg.Validate())
}
