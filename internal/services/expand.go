package services

import (
	"context"
	"time"
)

// Expand states which related entities a read operation resolves, instead of
// burying eager loading in every call site.
type Expand struct {
	Author  bool
	Options bool
	Stats   bool
}

// ExpandAll is what the HTTP layer asks for; API clients always render the
// full denormalized view.
var ExpandAll = Expand{Author: true, Options: true, Stats: true}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
