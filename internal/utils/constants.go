package utils

// Application Constants
const (
	AppName    = "RocketryBox"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Rate limiting, requests per minute per client IP
	DefaultRateLimit = 100
	QuoteRateLimit   = 30
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrValidationFailed = "validation failed"
)

// Cache Keys
const (
	CachePincodePrefix        = "pincode:"
	CacheCourierPrefix        = "courier:"
	CacheServiceabilityPrefix = "serviceability:"
	CacheRateLimitPrefix      = "rate_limit:"
)
