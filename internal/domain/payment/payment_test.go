package payment

import (
	"testing"
	"time"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAmount() Amount {
	return Amount{ValueCents: 50_00, Currency: "USD"}
}

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(uuid.New(), validAmount())
	require.NoError(t, err)

	assert.Equal(t, StateNew, p.State)
	assert.Equal(t, int64(50_00), p.Amount.ValueCents)
	assert.Zero(t, p.RefundedCents)
	assert.Empty(t, p.RemoteID)
}

func TestNewPayment_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		methodID uuid.UUID
		amount   Amount
	}{
		{"zero amount", uuid.New(), Amount{ValueCents: 0, Currency: "USD"}},
		{"negative amount", uuid.New(), Amount{ValueCents: -100, Currency: "USD"}},
		{"missing currency", uuid.New(), Amount{ValueCents: 100}},
		{"bad currency code", uuid.New(), Amount{ValueCents: 100, Currency: "US"}},
		{"nil payment method", uuid.Nil, validAmount()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPayment(tt.methodID, tt.amount)
			assert.Error(t, err)
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    State
		to      State
		allowed bool
	}{
		{StateNew, StateAuthorization, true},
		{StateNew, StateCaptureCompleted, true},
		{StateNew, StateAuthorizationVoided, false},
		{StateAuthorization, StateCaptureCompleted, true},
		{StateAuthorization, StateAuthorizationVoided, true},
		{StateAuthorization, StateCaptureRefunded, false},
		{StateCaptureCompleted, StateCapturePartiallyRefunded, true},
		{StateCaptureCompleted, StateCaptureRefunded, true},
		{StateCaptureCompleted, StateCompleted, true},
		{StateCapturePartiallyRefunded, StateCapturePartiallyRefunded, true},
		{StateCapturePartiallyRefunded, StateCaptureRefunded, true},
		{StateAuthorizationVoided, StateAuthorization, false},
		{StateCaptureRefunded, StateCaptureCompleted, false},
		{StateCompleted, StateNew, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			p := &Payment{State: tt.from}
			assert.Equal(t, tt.allowed, p.CanTransitionTo(tt.to))
		})
	}
}

func TestTransitionTo_Invalid(t *testing.T) {
	p := &Payment{State: StateNew}

	err := p.TransitionTo(StateCaptureRefunded)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidState)
	assert.Equal(t, StateNew, p.State)
}

func TestMarkAuthorized(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p := &Payment{State: StateNew, Amount: validAmount()}

	require.NoError(t, p.MarkAuthorized("A10A9A919242", now))

	assert.Equal(t, StateAuthorization, p.State)
	assert.Equal(t, "A10A9A919242", p.RemoteID)
	require.NotNil(t, p.AuthorizationExpiresAt)
	assert.Equal(t, now.Add(29*24*time.Hour), *p.AuthorizationExpiresAt)
}

func TestEnsureCapturable(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("valid authorization", func(t *testing.T) {
		p := authorizedPayment(now)
		assert.NoError(t, p.EnsureCapturable(now.Add(24*time.Hour)))
	})

	t.Run("wrong state", func(t *testing.T) {
		p := &Payment{State: StateNew}
		err := p.EnsureCapturable(now)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidState)
	})

	t.Run("expired authorization", func(t *testing.T) {
		p := authorizedPayment(now)
		err := p.EnsureCapturable(now.Add(30 * 24 * time.Hour))
		assert.ErrorIs(t, err, domainErrors.ErrPreconditionFailed)
		assertDomainCode(t, err, "authorization_expired")
	})

	t.Run("missing remote id", func(t *testing.T) {
		p := authorizedPayment(now)
		p.RemoteID = ""
		err := p.EnsureCapturable(now)
		assert.ErrorIs(t, err, domainErrors.ErrPreconditionFailed)
		assertDomainCode(t, err, "missing_remote_id")
	})
}

func TestEnsureVoidable(t *testing.T) {
	now := time.Now()

	p := authorizedPayment(now)
	assert.NoError(t, p.EnsureVoidable())

	p.RemoteID = ""
	assert.ErrorIs(t, p.EnsureVoidable(), domainErrors.ErrPreconditionFailed)

	fresh := &Payment{State: StateNew}
	assert.ErrorIs(t, fresh.EnsureVoidable(), domainErrors.ErrInvalidState)
}

func TestEnsureRefundable(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("full refund allowed", func(t *testing.T) {
		p := capturedPayment(now.Add(-24*time.Hour), 50_00)
		assert.NoError(t, p.EnsureRefundable(now, 50_00))
	})

	t.Run("wrong state", func(t *testing.T) {
		p := &Payment{State: StateAuthorization}
		assert.ErrorIs(t, p.EnsureRefundable(now, 10_00), domainErrors.ErrInvalidState)
	})

	t.Run("outside 180 day window", func(t *testing.T) {
		p := capturedPayment(now.Add(-181*24*time.Hour), 50_00)
		err := p.EnsureRefundable(now, 10_00)
		assert.ErrorIs(t, err, domainErrors.ErrPreconditionFailed)
		assertDomainCode(t, err, "refund_window_exceeded")
	})

	t.Run("exceeds balance", func(t *testing.T) {
		p := capturedPayment(now.Add(-24*time.Hour), 50_00)
		p.RefundedCents = 30_00
		err := p.EnsureRefundable(now, 25_00)
		assert.ErrorIs(t, err, domainErrors.ErrPreconditionFailed)
		assertDomainCode(t, err, "refund_exceeds_balance")
	})
}

func TestApplyRefund_PartialThenFull(t *testing.T) {
	now := time.Now()
	p := capturedPayment(now, 100_00)

	require.NoError(t, p.ApplyRefund(40_00))
	assert.Equal(t, StateCapturePartiallyRefunded, p.State)
	assert.Equal(t, int64(60_00), p.Balance())

	require.NoError(t, p.ApplyRefund(60_00))
	assert.Equal(t, StateCaptureRefunded, p.State)
	assert.Zero(t, p.Balance())
	assert.True(t, p.IsTerminal())
}

func TestApplyRefund_SumBelowAmount(t *testing.T) {
	now := time.Now()
	p := capturedPayment(now, 100_00)

	require.NoError(t, p.ApplyRefund(30_00))
	require.NoError(t, p.ApplyRefund(30_00))

	assert.Equal(t, StateCapturePartiallyRefunded, p.State)
	assert.Equal(t, int64(40_00), p.Balance())
}

func authorizedPayment(authorizedAt time.Time) *Payment {
	expires := authorizedAt.Add(AuthorizationGuarantee)
	return &Payment{
		State:                  StateAuthorization,
		Amount:                 validAmount(),
		RemoteID:               "V19A2A191460",
		AuthorizedAt:           &authorizedAt,
		AuthorizationExpiresAt: &expires,
	}
}

func capturedPayment(capturedAt time.Time, amountCents int64) *Payment {
	return &Payment{
		State:      StateCaptureCompleted,
		Amount:     Amount{ValueCents: amountCents, Currency: "USD"},
		RemoteID:   "V19A2A191460",
		CapturedAt: &capturedAt,
	}
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *domainErrors.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code)
}
