package payment

import (
	"context"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/cassiomorais/payflow/internal/payflow"
	"github.com/google/uuid"
)

// RefundPaymentUseCase credits a captured payment back to the card.
// Refunds accumulate: the payment ends up capture_partially_refunded until
// the cumulative refunded amount reaches the original amount.
type RefundPaymentUseCase struct {
	paymentRepo payment.Repository
	gateway     Gateway
	breaker     *Breaker
	clock       Clock
}

// NewRefundPaymentUseCase creates a new RefundPaymentUseCase.
func NewRefundPaymentUseCase(
	paymentRepo payment.Repository,
	gateway Gateway,
	breaker *Breaker,
	clock Clock,
) *RefundPaymentUseCase {
	return &RefundPaymentUseCase{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		breaker:     breaker,
		clock:       clock,
	}
}

// Execute refunds amountCents, or the remaining balance when nil.
func (uc *RefundPaymentUseCase) Execute(ctx context.Context, id uuid.UUID, amountCents *int64) (*payment.Payment, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// If not specified, refund whatever has not been refunded yet.
	amount := p.Balance()
	if amountCents != nil {
		amount = *amountCents
	}

	if err := p.EnsureRefundable(uc.clock.Now(), amount); err != nil {
		return nil, err
	}

	res, err := executeThroughBreaker(ctx, uc.breaker, uc.gateway, payflow.Params{
		payflow.FieldTrxType: string(payflow.TrxCredit),
		payflow.FieldAmount:  payflow.FormatAmount(amount),
		payflow.FieldOrigID:  p.RemoteID,
	})
	if err != nil {
		return nil, err
	}

	if res.Outcome != payflow.OutcomeApproved {
		return nil, domainErrors.NewDeclineError(int(res.Code), res.Message)
	}

	if err := p.ApplyRefund(amount); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}
