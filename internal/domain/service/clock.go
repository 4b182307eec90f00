// Package service defines the collaborator service interfaces the use cases
// depend on. Concrete implementations live under internal/infra.
package service

import "time"

// Clock abstracts the current time source so the date-window checks (voucher
// validity, point expiry) are deterministic under test.
type Clock interface {
	Now() time.Time
}
