// Package delivery defines the contract every transport entry point
// (HTTP today) implements so main can serve them uniformly.
package delivery

import "context"

// Delivery is a long-running transport endpoint. Serve blocks until the
// endpoint stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
