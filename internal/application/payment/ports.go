package payment

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/cassiomorais/payflow/internal/payflow"
	"github.com/sony/gobreaker/v2"
)

// Gateway executes a single Payflow transaction. This is an
// application-layer port; the concrete implementation is payflow.Client.
type Gateway interface {
	Execute(ctx context.Context, params payflow.Params) (*payflow.Result, error)
}

// Clock supplies the transaction time for expiry and window checks, so
// they stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// Breaker is the circuit breaker shared by all gateway-calling use cases.
type Breaker = gobreaker.CircuitBreaker[*payflow.Result]

// executeThroughBreaker runs one gateway exchange behind the breaker. An
// open breaker is reported as a transient failure: nothing was sent, so a
// manual retry is safe.
func executeThroughBreaker(ctx context.Context, breaker *Breaker, gw Gateway, params payflow.Params) (*payflow.Result, error) {
	res, err := breaker.Execute(func() (*payflow.Result, error) {
		return gw.Execute(ctx, params)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, domainErrors.NewDomainError(
				"gateway_unavailable",
				"gateway circuit breaker is open",
				domainErrors.ErrGatewayUnavailable,
			)
		}
		return nil, err
	}
	return res, nil
}
