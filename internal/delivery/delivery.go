// Package delivery defines the contract every transport entrypoint fulfills.
package delivery

import "context"

// Delivery is a long-running server (HTTP, worker) started by main and
// stopped through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
