package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvNexudusBaseURL  = "NEXUDUS_BASE_URL"
	EnvNexudusUsername = "NEXUDUS_API_USERNAME"
	EnvNexudusPassword = "NEXUDUS_API_PASSWORD"
	EnvNexudusTimeout  = "NEXUDUS_TIMEOUT"

	EnvPageCap        = "UPSTREAM_PAGE_CAP"
	EnvBookingSize    = "BOOKING_PAGE_SIZE"
	EnvJoinSize       = "JOIN_PAGE_SIZE"
	EnvSearchSize     = "SEARCH_PAGE_SIZE"
	EnvBroadSize      = "BROAD_PAGE_SIZE"
	EnvDetailFetchCap = "DETAIL_FETCH_CAP"
	EnvActiveMargin   = "ACTIVE_MARGIN"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_PASS_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout  = "REQUEST_TIMEOUT"
	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
