package payment

import (
	"context"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/cassiomorais/payflow/internal/payflow"
)

// CreateMethodUseCase tokenizes a card through a zero-amount verification
// authorization and stores the resulting gateway token. Raw card details
// only pass through here; they are never persisted or logged.
type CreateMethodUseCase struct {
	methodRepo payment.MethodRepository
	gateway    Gateway
	breaker    *Breaker
	clock      Clock
	testMode   bool
}

// CreateMethodRequest carries the raw card data and billing contact.
type CreateMethodRequest struct {
	Card    payment.CardDetails
	Billing payment.BillingAddress
}

// NewCreateMethodUseCase creates a new CreateMethodUseCase.
func NewCreateMethodUseCase(
	methodRepo payment.MethodRepository,
	gateway Gateway,
	breaker *Breaker,
	clock Clock,
	testMode bool,
) *CreateMethodUseCase {
	return &CreateMethodUseCase{
		methodRepo: methodRepo,
		gateway:    gateway,
		breaker:    breaker,
		clock:      clock,
		testMode:   testMode,
	}
}

// Execute verifies the card and stores the token. This is the one
// operation where the fraud-review result codes count as success: the
// card is usable even while the filters hold the verification.
func (uc *CreateMethodUseCase) Execute(ctx context.Context, req CreateMethodRequest) (*payment.Method, error) {
	res, err := executeThroughBreaker(ctx, uc.breaker, uc.gateway, payflow.Params{
		payflow.FieldTrxType:   string(payflow.TrxAuthorization),
		payflow.FieldAmount:    payflow.FormatAmount(0),
		payflow.FieldVerbosity: string(payflow.VerbosityHigh),
		payflow.FieldAccount:   req.Card.Number,
		payflow.FieldExpDate:   payment.WireExpiry(req.Card.ExpMonth, req.Card.ExpYear),
		payflow.FieldCVV2:      req.Card.SecurityCode,
		"billtoemail":          req.Billing.Email,
		"billtofirstname":      req.Billing.GivenName,
		"billtolastname":       req.Billing.FamilyName,
		"billtostreet":         req.Billing.Street,
		"billtocity":           req.Billing.City,
		"billtostate":          req.Billing.State,
		"billtozip":            req.Billing.PostalCode,
		"billtocountry":        req.Billing.Country,
	})
	if err != nil {
		return nil, err
	}

	if res.Outcome == payflow.OutcomeDeclined {
		return nil, domainErrors.NewDeclineError(int(res.Code), res.Message)
	}

	method, err := payment.NewMethod(req.Card, res.PNRef, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	method.Test = uc.testMode

	if err := uc.methodRepo.Create(ctx, method); err != nil {
		return nil, err
	}

	return method, nil
}
