// Package lifecycle holds shared timing values for server start and stop.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and background workers.
const DefaultTimeout = 10 * time.Second
