package openai

import (
	"context"

	"golang.org/x/time/rate"
)

// callLimiter gates outbound AI calls. A nil limiter imposes no limit.
type callLimiter struct {
	limiter *rate.Limiter
}

// newCallLimiter builds a limiter from a requests-per-second setting.
// rps <= 0 disables limiting.
func newCallLimiter(rps float64) *callLimiter {
	if rps <= 0 {
		return &callLimiter{}
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &callLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// wait blocks until a call may proceed or the context is done.
func (l *callLimiter) wait(ctx context.Context) error {
	if l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
