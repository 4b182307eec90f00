// Package lifecycle holds shared start/stop conventions for fx-managed components.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown of managed components.
const DefaultTimeout = 10 * time.Second
