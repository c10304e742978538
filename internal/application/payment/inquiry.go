package payment

import (
	"context"
	"errors"

	"github.com/avast/retry-go/v4"
	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/cassiomorais/payflow/internal/payflow"
	pkgretry "github.com/cassiomorais/payflow/pkg/retry"
	"github.com/google/uuid"
)

// InquiryUseCase looks up the gateway-side status of a payment's original
// transaction. Inquiry is a read: it is the only operation retried on
// transient failure, because re-sending it cannot duplicate a charge.
type InquiryUseCase struct {
	paymentRepo payment.Repository
	gateway     Gateway
	breaker     *Breaker
	retryCfg    pkgretry.Config
}

// InquiryResult is the gateway-side view of a transaction.
type InquiryResult struct {
	PNRef      string
	Result     payflow.ResultCode
	Message    string
	TransState payflow.TransactionState
	StateKnown bool
	Raw        payflow.Response
}

// NewInquiryUseCase creates a new InquiryUseCase.
func NewInquiryUseCase(
	paymentRepo payment.Repository,
	gateway Gateway,
	breaker *Breaker,
	retryCfg pkgretry.Config,
) *InquiryUseCase {
	return &InquiryUseCase{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		breaker:     breaker,
		retryCfg:    retryCfg,
	}
}

// Execute runs the inquiry and records the reported settlement state on
// the payment.
func (uc *InquiryUseCase) Execute(ctx context.Context, id uuid.UUID) (*InquiryResult, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.RemoteID == "" {
		return nil, domainErrors.NewDomainError(
			"missing_remote_id",
			"payment has no remote transaction to inquire about",
			domainErrors.ErrPreconditionFailed,
		)
	}

	res, err := pkgretry.DoWithResult(ctx, uc.retryCfg, func() (*payflow.Result, error) {
		r, execErr := executeThroughBreaker(ctx, uc.breaker, uc.gateway, payflow.Params{
			payflow.FieldTrxType:   string(payflow.TrxInquiry),
			payflow.FieldOrigID:    p.RemoteID,
			payflow.FieldVerbosity: string(payflow.VerbosityHigh),
		})
		if execErr != nil {
			// Only transport failures are worth retrying.
			if !errors.Is(execErr, domainErrors.ErrGatewayUnavailable) {
				return nil, retry.Unrecoverable(execErr)
			}
			return nil, execErr
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	if res.Outcome != payflow.OutcomeApproved {
		return nil, domainErrors.NewDeclineError(int(res.Code), res.Message)
	}

	out := &InquiryResult{
		PNRef:   res.PNRef,
		Result:  res.Code,
		Message: res.Message,
		Raw:     res.Raw,
	}

	if state, ok := res.TransState(); ok {
		out.TransState = state
		out.StateKnown = true
		p.RemoteState = int(state)
		if err := uc.paymentRepo.Update(ctx, p); err != nil {
			return nil, err
		}
	}

	return out, nil
}
