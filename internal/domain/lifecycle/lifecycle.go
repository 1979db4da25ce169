// Package lifecycle holds shared timeouts for application start and shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup checks and graceful shutdown of components.
const DefaultTimeout = 30 * time.Second
