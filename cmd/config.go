package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	StorageDriver      string
	KafkaHost          string
	KafkaTimelineTopic string
	LogLevel           string
	MetricsNamespace   string
	UrgencyWindowDays  int
	UrgencySchedule    string
	AutoAssignHeads    bool
	HeadSchedule       string
}

// Validate rejects a configuration the service cannot start with.
func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.UrgencyWindowDays < 1 {
		return fmt.Errorf("URGENCY_WINDOW_DAYS must be at least 1")
	}
	if c.KafkaHost != "" && c.KafkaTimelineTopic == "" {
		return fmt.Errorf("KAFKA_TIMELINE_TOPIC is required when KAFKA_HOST is set")
	}
	return nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) UrgencyWindow() time.Duration {
	return time.Duration(c.UrgencyWindowDays) * 24 * time.Hour
}

// KafkaBrokers splits the comma separated KAFKA_HOST value.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
