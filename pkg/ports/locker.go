package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes access to one simulation session across
// replicas of the HTTP or MCP server sharing a store.
type DistributedLocker interface {
	// Lock blocks until key (a session ID) is held by the caller or ctx ends.
	// The lock expires after ttl, so a crashed holder cannot block a session forever.
	// The returned UnlockFunc must be called once the session has been saved.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
