package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"frontdesk/pkg/logger"
)

type Config struct {
	Port     string
	LogLevel string

	NexudusBaseURL  string
	NexudusUsername string
	NexudusPassword string
	NexudusTimeout  time.Duration

	PageCap        int
	BookingSize    int
	JoinSize       int
	SearchSize     int
	BroadSize      int
	DetailFetchCap int
	ActiveMargin   time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		NexudusBaseURL:  getEnvStr(EnvNexudusBaseURL, DefaultNexudusBaseURL),
		NexudusUsername: getEnvStr(EnvNexudusUsername, ""),
		NexudusPassword: getEnvStr(EnvNexudusPassword, ""),
		NexudusTimeout:  getEnvDuration(EnvNexudusTimeout, DefaultNexudusTimeout),

		PageCap:        getEnvNum(EnvPageCap, DefaultPageCap),
		BookingSize:    getEnvNum(EnvBookingSize, DefaultBookingSize),
		JoinSize:       getEnvNum(EnvJoinSize, DefaultJoinSize),
		SearchSize:     getEnvNum(EnvSearchSize, DefaultSearchSize),
		BroadSize:      getEnvNum(EnvBroadSize, DefaultBroadSize),
		DetailFetchCap: getEnvNum(EnvDetailFetchCap, DefaultDetailFetchCap),
		ActiveMargin:   getEnvDuration(EnvActiveMargin, DefaultActiveMargin),

		KafkaBrokers: splitList(getEnvStr(EnvKafkaBrokers, "")),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout:  getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// EventsEnabled reports whether the audit event publisher should run.
func (cfg *Config) EventsEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}
	if !strings.HasPrefix(cfg.NexudusBaseURL, "http://") && !strings.HasPrefix(cfg.NexudusBaseURL, "https://") {
		problems = append(problems, fmt.Sprintf("NexudusBaseURL must be an http(s) URL, got: %s", cfg.NexudusBaseURL))
	}
	if cfg.NexudusUsername == "" || cfg.NexudusPassword == "" {
		problems = append(problems, "Nexudus API credentials must be set")
	}
	if cfg.NexudusTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("NexudusTimeout must be positive, got: %s", cfg.NexudusTimeout))
	}

	if cfg.PageCap < 1 || cfg.PageCap > DefaultPageCap {
		problems = append(problems, fmt.Sprintf("PageCap must be between 1 and %d, got: %d", DefaultPageCap, cfg.PageCap))
	}
	for name, size := range map[string]int{
		"BookingSize": cfg.BookingSize,
		"JoinSize":    cfg.JoinSize,
		"SearchSize":  cfg.SearchSize,
		"BroadSize":   cfg.BroadSize,
	} {
		if size < 1 || size > 1000 {
			problems = append(problems, fmt.Sprintf("%s must be between 1 and 1000, got: %d", name, size))
		}
	}
	if cfg.DetailFetchCap < 1 {
		problems = append(problems, fmt.Sprintf("DetailFetchCap must be positive, got: %d", cfg.DetailFetchCap))
	}
	if cfg.ActiveMargin < 0 {
		problems = append(problems, fmt.Sprintf("ActiveMargin cannot be negative, got: %s", cfg.ActiveMargin))
	}
	if cfg.EventsEnabled() && cfg.KafkaTopic == "" {
		problems = append(problems, "KafkaTopic cannot be empty when brokers are configured")
	}

	if cfg.RateLimitRequests <= 0 {
		problems = append(problems, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	for name, d := range map[string]time.Duration{
		"RateLimitWindow": cfg.RateLimitWindow,
		"RequestTimeout":  cfg.RequestTimeout,
		"ReadTimeout":     cfg.ReadTimeout,
		"WriteTimeout":    cfg.WriteTimeout,
		"IdleTimeout":     cfg.IdleTimeout,
		"ShutdownTimeout": cfg.ShutdownTimeout,
	} {
		if d <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if len(problems) > 0 {
		msg := "Configuration validation failed:\n"
		for i, p := range problems {
			msg += fmt.Sprintf("  %d. %s\n", i+1, p)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"nexudus_base_url", cfg.NexudusBaseURL,
		"nexudus_username_set", cfg.NexudusUsername != "",
		"nexudus_timeout", cfg.NexudusTimeout,
		"page_cap", cfg.PageCap,
		"booking_page_size", cfg.BookingSize,
		"join_page_size", cfg.JoinSize,
		"search_page_size", cfg.SearchSize,
		"broad_page_size", cfg.BroadSize,
		"detail_fetch_cap", cfg.DetailFetchCap,
		"active_margin", cfg.ActiveMargin,
		"events_enabled", cfg.EventsEnabled(),
		"kafka_topic", cfg.KafkaTopic,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
