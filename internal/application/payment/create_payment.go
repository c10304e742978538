package payment

import (
	"context"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/cassiomorais/payflow/internal/payflow"
	"github.com/google/uuid"
)

// CreatePaymentUseCase charges a stored payment method, either as an
// authorization to capture later or as an immediate sale.
type CreatePaymentUseCase struct {
	paymentRepo payment.Repository
	methodRepo  payment.MethodRepository
	gateway     Gateway
	breaker     *Breaker
	clock       Clock
	testMode    bool
}

// CreatePaymentRequest carries the caller's intent.
type CreatePaymentRequest struct {
	PaymentMethodID uuid.UUID
	AmountCents     int64
	Currency        string
	// Capture runs a sale (immediate capture) instead of an authorization.
	Capture bool
}

// NewCreatePaymentUseCase creates a new CreatePaymentUseCase.
func NewCreatePaymentUseCase(
	paymentRepo payment.Repository,
	methodRepo payment.MethodRepository,
	gateway Gateway,
	breaker *Breaker,
	clock Clock,
	testMode bool,
) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		paymentRepo: paymentRepo,
		methodRepo:  methodRepo,
		gateway:     gateway,
		breaker:     breaker,
		clock:       clock,
		testMode:    testMode,
	}
}

// Execute validates the preconditions locally, sends the transaction, and
// persists the payment only when the gateway approves it.
func (uc *CreatePaymentUseCase) Execute(ctx context.Context, req CreatePaymentRequest) (*payment.Payment, error) {
	method, err := uc.methodRepo.GetByID(ctx, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := method.EnsureUsable(now); err != nil {
		return nil, err
	}

	p, err := payment.NewPayment(method.ID, payment.Amount{ValueCents: req.AmountCents, Currency: req.Currency})
	if err != nil {
		return nil, err
	}
	p.Test = uc.testMode

	trxType := payflow.TrxAuthorization
	if req.Capture {
		trxType = payflow.TrxSale
	}

	res, err := executeThroughBreaker(ctx, uc.breaker, uc.gateway, payflow.Params{
		payflow.FieldTrxType:   string(trxType),
		payflow.FieldAmount:    payflow.FormatAmount(req.AmountCents),
		payflow.FieldCurrency:  req.Currency,
		payflow.FieldOrigID:    method.RemoteID,
		payflow.FieldVerbosity: string(payflow.VerbosityHigh),
	})
	if err != nil {
		return nil, err
	}

	if res.Outcome != payflow.OutcomeApproved {
		return nil, domainErrors.NewDeclineError(int(res.Code), res.Message)
	}

	if req.Capture {
		err = p.MarkCaptured(res.PNRef, now)
	} else {
		err = p.MarkAuthorized(res.PNRef, now)
	}
	if err != nil {
		return nil, err
	}

	if state, ok := res.TransState(); ok {
		p.RemoteState = int(state)
	} else {
		p.RemoteState = int(payflow.StateAuthorizationApproved)
	}

	if err := uc.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}
