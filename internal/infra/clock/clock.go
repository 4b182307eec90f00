// Package clock provides the system time source.
package clock

import (
	"time"

	"dacsan/internal/domain/service"
)

type systemClock struct{}

// New returns a Clock backed by the system time.
func New() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
