package testutil

import (
	"time"

	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/google/uuid"
)

// FixedTime is the reference instant used by clock-sensitive tests.
var FixedTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }

// NewFixedClock returns a clock pinned to FixedTime.
func NewFixedClock() FixedClock {
	return FixedClock{Time: FixedTime}
}

// NewTestMethod returns a stored, unexpired payment method.
func NewTestMethod() *payment.Method {
	return &payment.Method{
		ID:        uuid.New(),
		CardType:  "visa",
		Last4:     "1111",
		ExpMonth:  9,
		ExpYear:   FixedTime.Year() + 2,
		RemoteID:  "VERIF0000001",
		ExpiresAt: payment.CardExpirationTime(9, FixedTime.Year()+2),
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}

// NewExpiredMethod returns a payment method whose card expired last year.
func NewExpiredMethod() *payment.Method {
	m := NewTestMethod()
	m.ExpMonth = 1
	m.ExpYear = FixedTime.Year() - 1
	m.ExpiresAt = payment.CardExpirationTime(1, FixedTime.Year()-1)
	return m
}

// NewTestPayment returns a payment in the "new" state.
func NewTestPayment(methodID uuid.UUID, amountCents int64) *payment.Payment {
	return &payment.Payment{
		ID:              uuid.New(),
		PaymentMethodID: methodID,
		Amount:          payment.Amount{ValueCents: amountCents, Currency: "USD"},
		State:           payment.StateNew,
		CreatedAt:       FixedTime,
		UpdatedAt:       FixedTime,
	}
}

// NewAuthorizedPayment returns a payment holding a fresh authorization.
func NewAuthorizedPayment(methodID uuid.UUID, amountCents int64) *payment.Payment {
	p := NewTestPayment(methodID, amountCents)
	authorizedAt := FixedTime
	expires := authorizedAt.Add(payment.AuthorizationGuarantee)
	p.State = payment.StateAuthorization
	p.RemoteID = "A10A9A919242"
	p.AuthorizedAt = &authorizedAt
	p.AuthorizationExpiresAt = &expires
	return p
}

// NewCapturedPayment returns a payment captured at FixedTime.
func NewCapturedPayment(methodID uuid.UUID, amountCents int64) *payment.Payment {
	p := NewAuthorizedPayment(methodID, amountCents)
	capturedAt := FixedTime
	p.State = payment.StateCaptureCompleted
	p.CapturedAt = &capturedAt
	return p
}
