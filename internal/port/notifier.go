package port

import "context"

// ConnectivityNotifier delivers a unit signal per OS connectivity change.
type ConnectivityNotifier interface {
	// Listen sends on signals until ctx is done, then closes signals.
	// Sends must not block: a pending signal already covers the change.
	Listen(ctx context.Context, signals chan<- struct{}) error
}
