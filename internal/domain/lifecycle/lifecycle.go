// Package lifecycle holds timing constants shared by start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook (DB ping, server shutdown).
const DefaultTimeout = 10 * time.Second
