package config

import "time"

// Chat protocol constants.
const (
	// Message pagination
	DefaultMessagePageSize = 50
	MaxMessagePageSize     = 100

	// WebSocket client buffers
	SendBufferSize = 256

	// Presence
	PresenceTTL = 120 * time.Second

	// SessionRevokeTTL keeps the revocation marker alive at least as long
	// as any outstanding token could be.
	SessionRevokeTTL = 72 * time.Hour

	// Auth endpoint rate limiting (per client IP)
	AuthRateLimit = 5  // requests per second
	AuthRateBurst = 10 // burst size
)
