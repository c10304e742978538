package payment

import (
	"context"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/cassiomorais/payflow/internal/payflow"
	"github.com/google/uuid"
)

// VoidPaymentUseCase releases an authorization without capturing it.
type VoidPaymentUseCase struct {
	paymentRepo payment.Repository
	gateway     Gateway
	breaker     *Breaker
}

// NewVoidPaymentUseCase creates a new VoidPaymentUseCase.
func NewVoidPaymentUseCase(
	paymentRepo payment.Repository,
	gateway Gateway,
	breaker *Breaker,
) *VoidPaymentUseCase {
	return &VoidPaymentUseCase{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		breaker:     breaker,
	}
}

// Execute voids the authorization.
func (uc *VoidPaymentUseCase) Execute(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.EnsureVoidable(); err != nil {
		return nil, err
	}

	res, err := executeThroughBreaker(ctx, uc.breaker, uc.gateway, payflow.Params{
		payflow.FieldTrxType:   string(payflow.TrxVoid),
		payflow.FieldOrigID:    p.RemoteID,
		payflow.FieldVerbosity: string(payflow.VerbosityHigh),
	})
	if err != nil {
		return nil, err
	}

	if res.Outcome != payflow.OutcomeApproved {
		return nil, domainErrors.NewDeclineError(int(res.Code), res.Message)
	}

	if err := p.MarkVoided(); err != nil {
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
