package payflow

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// NewBreaker returns the circuit breaker the application wraps around
// gateway calls. An open breaker fails fast with a transient error before
// any transport attempt, which is safe because nothing was sent.
func NewBreaker(name string) *gobreaker.CircuitBreaker[*Result] {
	return gobreaker.NewCircuitBreaker[*Result](gobreaker.Settings{
		Name:        name,
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
	})
}
