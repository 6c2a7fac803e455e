package utils

import (
	"context"
	"time"
)

// Register operations must stay snappy; no statement gets more than this.
const DefaultDBTimeout = 3 * time.Second

// WithDBTimeout bounds a database call with the standard statement deadline.
func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}
