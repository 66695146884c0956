package clients

import "time"

// Retry tuning for Valkey commands. Connection errors additionally trigger
// a client recreate inside the retry loop.
const (
	VALKEY_RETRY_ATTEMPTS = 3
	VALKEY_RETRY_DELAY    = 250 * time.Millisecond
)
