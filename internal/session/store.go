package session

import (
	"context"
	"time"
)

// Store maps opaque session IDs to principal IDs. Deleting the record is what
// makes logout a real revocation instead of just dropping a cookie.
type Store interface {
	Save(ctx context.Context, sessionID string, principalID uint, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (uint, bool, error)
	Delete(ctx context.Context, sessionID string) error
}
