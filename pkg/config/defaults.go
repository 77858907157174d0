package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultNexudusBaseURL = "https://spaces.nexudus.com/api/spaces"
	DefaultNexudusTimeout = 10 * time.Second

	// DefaultPageCap bounds every pagination loop against a runaway
	// upstream; the per-entity sizes mirror what the upstream tolerates
	// per request.
	DefaultPageCap        = 10
	DefaultBookingSize    = 500
	DefaultJoinSize       = 200
	DefaultSearchSize     = 50
	DefaultBroadSize      = 200
	DefaultDetailFetchCap = 25
	DefaultActiveMargin   = 15 * time.Minute

	DefaultKafkaTopic = "frontdesk.pass.resolved"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout  = 30 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
