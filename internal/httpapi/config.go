package httpapi

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// Emit rate limit applied to POST /events/{category}. Each mux built by
// NewMux gets its own limiter from these settings.
var (
	emitRatePerSec float64 = 50
	emitBurst              = 100
)

// SetEmitRate configures the emit endpoint limiter. Non-positive values
// restore the defaults.
func SetEmitRate(perSec float64, burst int) {
	if perSec <= 0 {
		perSec = 50
	}
	if burst <= 0 {
		burst = 100
	}
	emitRatePerSec = perSec
	emitBurst = burst
}

// streamBuffer is the per-stream event buffer; a full buffer drops events.
var streamBuffer = 64

// SetStreamBuffer sets the per-stream buffer size.
func SetStreamBuffer(n int) {
	if n <= 0 {
		n = 64
	}
	streamBuffer = n
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server. The allowed
// origins also gate websocket upgrades.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
