package client

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"tvtally/internal/config"

	"github.com/failsafe-go/failsafe-go/ratelimiter"
)

// Throttle paces requests toward the upstream host. It is decoupled from the
// extraction logic so the policy can be tuned or disabled without touching
// the scraping code.
type Throttle interface {
	// Wait blocks until the next request may be sent, or until the context
	// is cancelled.
	Wait(ctx context.Context) error
}

// NewThrottle builds the configured throttle: "random" draws a uniform
// whole-second delay before every request (the classic scraper politeness
// policy), "smooth" spaces requests evenly with a rate limiter, "none"
// disables pacing.
func NewThrottle(cfg *config.Config) (Throttle, error) {
	switch cfg.Throttle.Provider {
	case "none":
		return nopThrottle{}, nil
	case "", "random":
		min := cfg.Throttle.MinDelaySeconds
		max := cfg.Throttle.MaxDelaySeconds
		if min < 0 || max < min {
			return nil, fmt.Errorf("throttle: invalid delay bounds [%d, %d]", min, max)
		}
		return &randomDelayThrottle{min: min, max: max}, nil
	case "smooth":
		perMinute := cfg.Throttle.RequestsPerMinute
		if perMinute <= 0 {
			return nil, fmt.Errorf("throttle: requests_per_minute must be positive, got %d", perMinute)
		}
		return &smoothThrottle{limiter: ratelimiter.NewSmooth[any](uint(perMinute), time.Minute)}, nil
	default:
		return nil, fmt.Errorf("throttle: unknown provider %q", cfg.Throttle.Provider)
	}
}

type nopThrottle struct{}

func (nopThrottle) Wait(context.Context) error { return nil }

// randomDelayThrottle sleeps a uniformly drawn whole-second delay in
// [min, max] before each request.
type randomDelayThrottle struct {
	min int
	max int
}

func (t *randomDelayThrottle) Wait(ctx context.Context) error {
	delay := time.Duration(t.min+rand.IntN(t.max-t.min+1)) * time.Second
	if delay == 0 {
		return ctx.Err()
	}
	logger := config.GetLogger()
	logger.Debug().Dur("delay", delay).Msg("Throttling before fetch")

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// smoothThrottle blocks on a failsafe-go rate limiter permit.
type smoothThrottle struct {
	limiter ratelimiter.RateLimiter[any]
}

func (t *smoothThrottle) Wait(ctx context.Context) error {
	return t.limiter.AcquirePermitWithMaxWait(ctx, time.Minute)
}
