package payment

import (
	"context"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/cassiomorais/payflow/internal/payflow"
	"github.com/google/uuid"
)

// CapturePaymentUseCase settles a previously approved authorization.
type CapturePaymentUseCase struct {
	paymentRepo payment.Repository
	gateway     Gateway
	breaker     *Breaker
	clock       Clock
}

// NewCapturePaymentUseCase creates a new CapturePaymentUseCase.
func NewCapturePaymentUseCase(
	paymentRepo payment.Repository,
	gateway Gateway,
	breaker *Breaker,
	clock Clock,
) *CapturePaymentUseCase {
	return &CapturePaymentUseCase{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		breaker:     breaker,
		clock:       clock,
	}
}

// Execute captures the authorization. amountCents captures a partial
// amount when non-nil; otherwise the entire authorized amount is settled.
func (uc *CapturePaymentUseCase) Execute(ctx context.Context, id uuid.UUID, amountCents *int64) (*payment.Payment, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := p.EnsureCapturable(now); err != nil {
		return nil, err
	}

	// If not specified, capture the entire amount.
	amount := p.Amount.ValueCents
	if amountCents != nil {
		amount = *amountCents
	}
	if amount <= 0 || amount > p.Amount.ValueCents {
		return nil, domainErrors.NewValidationError("amount", "must be positive and at most the authorized amount")
	}

	res, err := executeThroughBreaker(ctx, uc.breaker, uc.gateway, payflow.Params{
		payflow.FieldTrxType:  string(payflow.TrxDelayedCapture),
		payflow.FieldAmount:   payflow.FormatAmount(amount),
		payflow.FieldCurrency: p.Amount.Currency,
		payflow.FieldOrigID:   p.RemoteID,
	})
	if err != nil {
		return nil, err
	}

	if res.Outcome != payflow.OutcomeApproved {
		return nil, domainErrors.NewDeclineError(int(res.Code), res.Message)
	}

	// The original authorization reference stays on the payment; the
	// capture's own PNREF is not tracked separately.
	p.Amount.ValueCents = amount
	if err := p.MarkCaptured("", now); err != nil {
		return nil, err
	}
	if state, ok := res.TransState(); ok {
		p.RemoteState = int(state)
	}

	if err := uc.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}
