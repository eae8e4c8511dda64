package client

import (
	"net/http"
	"time"

	"tvtally/internal/config"

	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

// newRetryPolicy builds the retry policy applied to every page fetch:
// transport errors and retryable statuses (429 and 5xx, per failsafehttp's
// defaults) with exponential backoff. This is the sole resilience mechanism
// against transient upstream failures.
func newRetryPolicy(cfg *config.Config) retrypolicy.RetryPolicy[*http.Response] {
	logger := config.GetLogger()

	maxRetries := cfg.Retry.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	initial := parseDurationOr(cfg.Retry.InitialBackoff, 2*time.Second)
	max := parseDurationOr(cfg.Retry.MaxBackoff, 30*time.Second)
	if max < initial {
		max = initial
	}

	logger.Debug().
		Int("max_retries", maxRetries).
		Dur("initial_backoff", initial).
		Dur("max_backoff", max).
		Msg("Configured fetch retry policy")

	return failsafehttp.NewRetryPolicyBuilder().
		WithBackoff(initial, max).
		WithMaxRetries(maxRetries).
		Build()
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Str("duration", s).Msg("Invalid duration, using fallback")
		return fallback
	}
	return d
}
