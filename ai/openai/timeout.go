package openai

import (
	"context"
	"time"
)

// callTimeout bounds a single external AI call. Zero means no bound.
type callTimeout time.Duration

// bound derives a deadline-bounded context for one call. The caller must
// invoke the returned cancel function.
func (t callTimeout) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if t <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(t))
}
