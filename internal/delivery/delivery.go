// Package delivery defines the entry points that expose the application to
// the outside world.
package delivery

import "context"

// Delivery is a long-running entry point (an HTTP server, a worker) started
// by the application container.
type Delivery interface {
	// Serve blocks until the delivery stops or the context is cancelled.
	Serve(ctx context.Context) error
}
