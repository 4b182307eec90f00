// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a runnable transport (HTTP API, worker) managed by the fx app.
type Delivery interface {
	// Serve blocks, serving requests until the server is shut down.
	Serve(ctx context.Context) error
}
