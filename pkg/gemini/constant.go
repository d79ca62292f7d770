package gemini

import "time"

const (
	// DefaultModel is the default Gemini model
	DefaultModel = "gemini-2.0-flash-exp"

	// DefaultAPIURL is the default Gemini API endpoint
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout bounds every generation round-trip. A timed-out call is
	// reported to callers the same way as any other upstream failure.
	DefaultTimeout = 15 * time.Second
)
