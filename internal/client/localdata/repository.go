// Package localdata stores the client's durable state slots: small named
// string values (the session token, the serialized cart) that must survive
// process restarts. It is the CLI's analog of a browser's localStorage.
package localdata

import "context"

// Repository is a named-slot store. Each consumer owns its keys exclusively
// and must be the only reader and writer of them.
type Repository interface {
	// Get returns the slot value and whether the slot exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
