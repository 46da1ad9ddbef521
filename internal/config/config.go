package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataPath          string
	ForecastInputPath string
	SplitRatio        float64
	SplitSeed         uint64

	// ForecastInterval re-runs the forecast on this period; zero runs once.
	ForecastInterval time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka result publishing.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string

	// SQLitePath enables the forecast history store when set.
	SQLitePath string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	splitRatio, err := parseSplitRatio()
	if err != nil {
		return nil, err
	}

	splitSeed, err := parseSplitSeed()
	if err != nil {
		return nil, err
	}

	forecastInterval, err := parseForecastInterval()
	if err != nil {
		return nil, err
	}

	kafkaEnabled, err := parseBool("KAFKA_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataPath:          sharedcfg.EnvOrDefault("DATA_PATH", "data/climate_change_dataset.csv"),
		ForecastInputPath: os.Getenv("FORECAST_INPUT_PATH"),
		SplitRatio:        splitRatio,
		SplitSeed:         splitSeed,
		ForecastInterval:  forecastInterval,
		HTTPAddr:          sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:   shutdownTimeout,

		KafkaEnabled:   kafkaEnabled,
		KafkaBrokers:   sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "climate-forecasts"),

		SQLitePath: os.Getenv("SQLITE_PATH"),
	}

	if cfg.DataPath == "" {
		return nil, errors.New("DATA_PATH is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

// parseSplitRatio reads the test fraction, which must lie strictly between 0 and 1.
func parseSplitRatio() (float64, error) {
	s := sharedcfg.EnvOrDefault("SPLIT_RATIO", "0.2")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !(v > 0 && v < 1) {
		return 0, errors.New("invalid SPLIT_RATIO: must be a number in (0,1)")
	}
	return v, nil
}

func parseSplitSeed() (uint64, error) {
	s := sharedcfg.EnvOrDefault("SPLIT_SEED", "42")
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.New("invalid SPLIT_SEED: must be a non-negative integer")
	}
	return v, nil
}

func parseForecastInterval() (time.Duration, error) {
	s := sharedcfg.EnvOrDefault("FORECAST_INTERVAL", "0s")
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errors.New("invalid FORECAST_INTERVAL: must be a non-negative duration")
	}
	return d, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.New("invalid " + key)
	}
	return v, nil
}
