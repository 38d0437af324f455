package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "")
		t.Setenv("REDIS_DB", "")

		cfg, err := LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 0, cfg.RedisDB)
		assert.Equal(t, 100, cfg.RelayBatchSize)
	})

	t.Run("should read the environment and a dotenv file", func(t *testing.T) {
		dir := t.TempDir()
		envFile := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("DEFAULT_CARRIER=sagawa\n"), 0o600))
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("DEFAULT_CARRIER", "")
		require.NoError(t, os.Unsetenv("DEFAULT_CARRIER"))

		cfg, err := LoadConfig(envFile)

		require.NoError(t, err)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, "sagawa", cfg.DefaultCarrier)
	})

	t.Run("should ignore a missing dotenv file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
		require.NoError(t, err)
	})

	t.Run("should reject a non-numeric integer", func(t *testing.T) {
		t.Setenv("REDIS_DB", "two")

		_, err := LoadConfig("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "REDIS_DB")
	})
}

func TestConfig_Levels(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{LogLevel: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: "chatty"}.SlogLevel())
	assert.Equal(t, log.WARN, Config{LogLevel: "warn"}.EchoLevel())
}
