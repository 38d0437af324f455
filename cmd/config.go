package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers            []string
	KafkaNotificationsTopic string
	KafkaSalesTopic         string
	KafkaConsumerGroup      string

	DefaultCarrier    string
	RelaySchedule     string
	RelayBatchSize    int
	ReconcileSchedule string
	LogLevel          string
}

// LoadConfig reads the environment. Values in envFile, when it exists, fill
// in variables that are not already set.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	batch, err := getEnvInt("RELAY_BATCH_SIZE", 100)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:                getEnv("HTTP_PORT", "8080"),
		DBHost:                  getEnv("DB_HOST", "localhost"),
		DBPort:                  getEnv("DB_PORT", "5432"),
		DBUser:                  getEnv("DB_USER", "postgres"),
		DBPassword:              getEnv("DB_PASSWORD", ""),
		DBName:                  getEnv("DB_NAME", "fulfillment"),
		DBSslMode:               getEnv("DB_SSLMODE", "disable"),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		RedisDB:                 redisDB,
		KafkaBrokers:            splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaNotificationsTopic: getEnv("KAFKA_NOTIFICATIONS_TOPIC", "fulfillment.notifications"),
		KafkaSalesTopic:         getEnv("KAFKA_SALES_TOPIC", "marketplace.sales"),
		KafkaConsumerGroup:      getEnv("KAFKA_CONSUMER_GROUP", "fulfillment"),
		DefaultCarrier:          getEnv("DEFAULT_CARRIER", "yamato"),
		RelaySchedule:           getEnv("RELAY_SCHEDULE", "*/5 * * * * *"),
		RelayBatchSize:          batch,
		ReconcileSchedule:       getEnv("RECONCILE_SCHEDULE", "0 */10 * * * *"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
	}, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel falls back to info for unknown names.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// EchoLevel maps LogLevel onto gommon levels for echo's own logger.
func (c Config) EchoLevel() log.Lvl {
	switch c.SlogLevel() {
	case slog.LevelDebug:
		return log.DEBUG
	case slog.LevelWarn:
		return log.WARN
	case slog.LevelError:
		return log.ERROR
	default:
		return log.INFO
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
