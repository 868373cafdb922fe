package interfaces

import (
	"context"
	"time"
)

// ICache is a byte cache keyed by string. A ttl of zero keeps the entry until
// it is invalidated.
type ICache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}
