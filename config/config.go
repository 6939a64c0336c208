package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Probe  ProbeConfig
	Output OutputConfig
	Log    LogConfig
}

// ProbeConfig controls fetching and pacing behavior.
type ProbeConfig struct {
	// Timeout is the per-attempt fetch deadline.
	Timeout time.Duration // default: 10s

	// Retries is the maximum number of retry attempts for retryable
	// statuses and transient transport errors.
	Retries int // default: 3

	// BackoffFactor scales the exponential retry backoff:
	// delay = BackoffFactor * 2^(attempt-1).
	BackoffFactor time.Duration // default: 1s

	// Delay is the pacing sleep between URLs; <= 0 disables pacing.
	Delay time.Duration // default: 1s

	// InsecureTLS disables certificate verification. The tool probes
	// arbitrary, often misconfigured sites, so this defaults to on;
	// set URLPROBE_INSECURE_TLS=false to verify certificates.
	InsecureTLS bool // default: true
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	// CSVPath, if non-empty, enables incremental CSV output.
	CSVPath string

	// TitleDisplayLimit truncates titles on the console; the full
	// value is always written to the CSV.
	TitleDisplayLimit int // default: 100
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
// Command-line flags override these values in main.
func Load() *Config {
	return &Config{
		Probe: ProbeConfig{
			Timeout:       envDurationOr("URLPROBE_TIMEOUT", 10*time.Second),
			Retries:       envIntOr("URLPROBE_RETRIES", 3),
			BackoffFactor: envDurationOr("URLPROBE_BACKOFF", time.Second),
			Delay:         envDurationOr("URLPROBE_DELAY", time.Second),
			InsecureTLS:   envBoolOr("URLPROBE_INSECURE_TLS", true),
		},
		Output: OutputConfig{
			CSVPath:           os.Getenv("URLPROBE_CSV"),
			TitleDisplayLimit: envIntOr("URLPROBE_TITLE_LIMIT", 100),
		},
		Log: LogConfig{
			Level:  envOr("URLPROBE_LOG_LEVEL", "info"),
			Format: envOr("URLPROBE_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
