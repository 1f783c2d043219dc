package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // feed zone must resolve on hosts without a zoneinfo database

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Measurement feed.
	FeedBaseURL    string
	FeedSourceTag  string
	FeedFileExt    string
	FeedMinBytes   int
	FeedTimeout    time.Duration
	FeedDelimiters []rune
	FeedLocation   *time.Location

	// Station directory. Empty disables the lookup.
	StationsURL string

	CacheTTL time.Duration

	// Optional hourly record sink.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := parsePositiveDuration("FEED_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parsePositiveDuration("CACHE_TTL", "15m")
	if err != nil {
		return nil, err
	}

	minBytes, err := parseMinBytes()
	if err != nil {
		return nil, err
	}

	delimiters, err := parseDelimiters(sharedcfg.EnvOrDefault("FEED_DELIMITERS", ",;"))
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(sharedcfg.EnvOrDefault("FEED_TIMEZONE", "Europe/Amsterdam"))
	if err != nil {
		return nil, errors.New("invalid FEED_TIMEZONE")
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FeedBaseURL:    sharedcfg.EnvOrDefault("FEED_BASE_URL", "https://data.rivm.nl/data/zonkracht/"),
		FeedSourceTag:  sharedcfg.EnvOrDefault("FEED_SOURCE_TAG", "RIVM"),
		FeedFileExt:    sharedcfg.EnvOrDefault("FEED_FILE_EXT", "txt"),
		FeedMinBytes:   minBytes,
		FeedTimeout:    feedTimeout,
		FeedDelimiters: delimiters,
		FeedLocation:   loc,

		StationsURL: os.Getenv("STATIONS_URL"),
		CacheTTL:    cacheTTL,

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "hourly-uv-index"),
		KafkaEnabled: kafkaEnabled,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseMinBytes() (int, error) {
	s := os.Getenv("FEED_MIN_BYTES")
	if s == "" {
		return 1024, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid FEED_MIN_BYTES: must be a non-negative integer")
	}
	return n, nil
}

// parseDelimiters turns ",;" into [',', ';']. Whitespace is ignored except
// for a literal "\t", which selects tab.
func parseDelimiters(s string) ([]rune, error) {
	s = strings.ReplaceAll(s, `\t`, "\t")
	var out []rune
	seen := make(map[rune]bool)
	for _, r := range s {
		if r == ' ' || r == '\n' || r == '\r' {
			continue
		}
		if r == '"' || r == '#' || r == 0xFFFD {
			return nil, errors.New("invalid FEED_DELIMITERS: quote, comment and invalid characters are not allowed")
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("invalid FEED_DELIMITERS: at least one delimiter required")
	}
	return out, nil
}
