package payment

import (
	"fmt"
	"time"

	"github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/google/uuid"
)

// State represents the local payment state in the state machine
type State string

const (
	StateNew                      State = "new"
	StateAuthorization            State = "authorization"
	StateAuthorizationVoided      State = "authorization_voided"
	StateCaptureCompleted         State = "capture_completed"
	StateCapturePartiallyRefunded State = "capture_partially_refunded"
	StateCaptureRefunded          State = "capture_refunded"
	StateCompleted                State = "completed"
)

const (
	// AuthorizationGuarantee is how long Payflow guarantees an
	// authorization before it may no longer be captured.
	AuthorizationGuarantee = 29 * 24 * time.Hour

	// RefundWindow is how long after capture a credit may be issued.
	RefundWindow = 180 * 24 * time.Hour
)

// Payment represents a single charge against a stored payment method.
// The gateway client never mutates it; use cases apply transitions after
// interpreting the transaction outcome.
type Payment struct {
	ID                     uuid.UUID
	PaymentMethodID        uuid.UUID
	Amount                 Amount
	RefundedCents          int64
	State                  State
	RemoteID               string
	RemoteState            int
	Test                   bool
	AuthorizedAt           *time.Time
	AuthorizationExpiresAt *time.Time
	CapturedAt             *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Amount represents a monetary amount in the smallest currency unit (e.g. cents).
type Amount struct {
	ValueCents int64
	Currency   string
}

// String returns a human-readable representation of the amount.
func (a Amount) String() string {
	whole := a.ValueCents / 100
	frac := a.ValueCents % 100
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%02d %s", whole, frac, a.Currency)
}

// Validate checks that the amount is valid.
func (a Amount) Validate() error {
	return validateAmount(a)
}

// NewPayment creates a new payment in the "new" state.
func NewPayment(paymentMethodID uuid.UUID, amount Amount) (*Payment, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	if paymentMethodID == uuid.Nil {
		return nil, errors.NewValidationError("payment_method_id", "cannot be empty")
	}

	now := time.Now()
	return &Payment{
		ID:              uuid.New(),
		PaymentMethodID: paymentMethodID,
		Amount:          amount,
		State:           StateNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Balance returns the refundable remainder of the payment.
func (p *Payment) Balance() int64 {
	return p.Amount.ValueCents - p.RefundedCents
}

// CanTransitionTo checks if the payment can transition to the given state
func (p *Payment) CanTransitionTo(newState State) bool {
	transitions := map[State][]State{
		StateNew: {
			StateAuthorization,
			StateCaptureCompleted, // Sale (immediate capture)
		},
		StateAuthorization: {
			StateCaptureCompleted,
			StateAuthorizationVoided,
		},
		StateCaptureCompleted: {
			StateCapturePartiallyRefunded,
			StateCaptureRefunded,
			StateCompleted,
		},
		StateCapturePartiallyRefunded: {
			StateCapturePartiallyRefunded, // Further partial refunds
			StateCaptureRefunded,
		},
		StateAuthorizationVoided: {}, // Terminal state
		StateCaptureRefunded:     {}, // Terminal state
		StateCompleted:           {}, // Terminal state
	}

	allowedTransitions, exists := transitions[p.State]
	if !exists {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newState {
			return true
		}
	}
	return false
}

// TransitionTo transitions the payment to a new state
func (p *Payment) TransitionTo(newState State) error {
	if !p.CanTransitionTo(newState) {
		return errors.NewDomainError(
			"invalid_transition",
			"cannot transition from "+string(p.State)+" to "+string(newState),
			errors.ErrInvalidState,
		)
	}

	p.State = newState
	p.UpdatedAt = time.Now()

	return nil
}

// MarkAuthorized records an approved authorization. The 29-day guarantee
// window starts at the given transaction time.
func (p *Payment) MarkAuthorized(remoteID string, now time.Time) error {
	if err := p.TransitionTo(StateAuthorization); err != nil {
		return err
	}
	expires := now.Add(AuthorizationGuarantee)
	p.RemoteID = remoteID
	p.AuthorizedAt = &now
	p.AuthorizationExpiresAt = &expires
	return nil
}

// MarkCaptured records an approved sale or delayed capture.
func (p *Payment) MarkCaptured(remoteID string, now time.Time) error {
	if err := p.TransitionTo(StateCaptureCompleted); err != nil {
		return err
	}
	if remoteID != "" {
		p.RemoteID = remoteID
	}
	p.CapturedAt = &now
	return nil
}

// MarkVoided records an approved void of an authorization.
func (p *Payment) MarkVoided() error {
	return p.TransitionTo(StateAuthorizationVoided)
}

// ApplyRefund accumulates an approved credit and moves the payment to
// capture_partially_refunded or capture_refunded depending on whether the
// cumulative refunded amount has reached the original amount.
func (p *Payment) ApplyRefund(amountCents int64) error {
	newRefunded := p.RefundedCents + amountCents

	target := StateCaptureRefunded
	if newRefunded < p.Amount.ValueCents {
		target = StateCapturePartiallyRefunded
	}

	if err := p.TransitionTo(target); err != nil {
		return err
	}
	p.RefundedCents = newRefunded
	return nil
}

// EnsureState fails with an invalid-state error unless the payment is in
// one of the given states. This check always runs before a gateway call.
func (p *Payment) EnsureState(states ...State) error {
	for _, s := range states {
		if p.State == s {
			return nil
		}
	}
	return errors.NewDomainError(
		"invalid_state",
		fmt.Sprintf("operation requires state %v, payment is %s", states, p.State),
		errors.ErrInvalidState,
	)
}

// EnsureCapturable validates the delayed-capture preconditions: the payment
// holds an unexpired authorization with a known remote transaction id.
func (p *Payment) EnsureCapturable(now time.Time) error {
	if err := p.EnsureState(StateAuthorization); err != nil {
		return err
	}
	if p.AuthorizationExpiresAt == nil || now.After(*p.AuthorizationExpiresAt) {
		return errors.NewDomainError(
			"authorization_expired",
			"authorizations are guaranteed for up to 29 days",
			errors.ErrPreconditionFailed,
		)
	}
	if p.RemoteID == "" {
		return errors.NewDomainError(
			"missing_remote_id",
			"could not determine the remote transaction id",
			errors.ErrPreconditionFailed,
		)
	}
	return nil
}

// EnsureVoidable validates the void preconditions.
func (p *Payment) EnsureVoidable() error {
	if err := p.EnsureState(StateAuthorization); err != nil {
		return err
	}
	if p.RemoteID == "" {
		return errors.NewDomainError(
			"missing_remote_id",
			"remote authorization id could not be determined",
			errors.ErrPreconditionFailed,
		)
	}
	return nil
}

// EnsureRefundable validates the credit preconditions: refundable state,
// capture within the 180-day window, a remote id, and a requested amount
// that does not exceed the remaining balance.
func (p *Payment) EnsureRefundable(now time.Time, amountCents int64) error {
	if err := p.EnsureState(StateCaptureCompleted, StateCapturePartiallyRefunded); err != nil {
		return err
	}
	if p.CapturedAt == nil || p.CapturedAt.Before(now.Add(-RefundWindow)) {
		return errors.NewDomainError(
			"refund_window_exceeded",
			"unable to refund a payment captured more than 180 days ago",
			errors.ErrPreconditionFailed,
		)
	}
	if p.RemoteID == "" {
		return errors.NewDomainError(
			"missing_remote_id",
			"could not determine the remote payment details",
			errors.ErrPreconditionFailed,
		)
	}
	if amountCents <= 0 {
		return errors.NewValidationError("amount", "must be greater than 0")
	}
	if amountCents > p.Balance() {
		return errors.NewDomainError(
			"refund_exceeds_balance",
			fmt.Sprintf("can't refund more than %s", Amount{ValueCents: p.Balance(), Currency: p.Amount.Currency}),
			errors.ErrPreconditionFailed,
		)
	}
	return nil
}

// IsTerminal checks if the payment is in a terminal state
func (p *Payment) IsTerminal() bool {
	return p.State == StateAuthorizationVoided ||
		p.State == StateCaptureRefunded ||
		p.State == StateCompleted
}

func validateAmount(amount Amount) error {
	if amount.ValueCents <= 0 {
		return errors.NewValidationError("amount", "must be greater than 0")
	}
	if amount.Currency == "" {
		return errors.NewValidationError("currency", "cannot be empty")
	}
	// Simple currency validation (3-letter code)
	if len(amount.Currency) != 3 {
		return errors.NewValidationError("currency", "must be a 3-letter ISO code")
	}
	return nil
}
