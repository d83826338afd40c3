package translator

import (
	"context"

	"golang.org/x/time/rate"

	"hovertrans/backend/internal/logger"
)

// DefaultRateLimit is the outbound request rate used when none is configured.
const DefaultRateLimit = 5

// Throttle spaces outbound translation calls. Up to qps calls pass at once;
// later ones queue for a token.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle allows qps calls per second, or DefaultRateLimit when qps <= 0.
func NewThrottle(qps int) *Throttle {
	if qps <= 0 {
		qps = DefaultRateLimit
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(qps), qps)}
}

// Wait returns once the call may proceed, or ctx's error.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.limiter.Allow() {
		return nil
	}
	logger.Debug("translation throttled", "module", "translator", "action", "throttle", "resource", "translation", "result", "waiting")
	return t.limiter.Wait(ctx)
}
