package payment

import (
	"fmt"
	"time"

	"github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/google/uuid"
)

// Method represents a tokenized card stored at the gateway. Only the
// remote token, the expiry, and presentation-safe card metadata are kept;
// raw card details exist solely in CardDetails at tokenization time.
type Method struct {
	ID        uuid.UUID
	CardType  string
	Last4     string
	ExpMonth  int
	ExpYear   int
	RemoteID  string
	ExpiresAt time.Time
	Test      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CardDetails carries the raw card data handed to the gateway during
// tokenization. Never persisted, never logged.
type CardDetails struct {
	Type         string
	Number       string
	ExpMonth     int
	ExpYear      int
	SecurityCode string
}

// BillingAddress is sent with the zero-amount verification authorization.
type BillingAddress struct {
	Email      string
	GivenName  string
	FamilyName string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// NewMethod creates a stored payment method from an approved verification.
func NewMethod(card CardDetails, remoteID string, now time.Time) (*Method, error) {
	if remoteID == "" {
		return nil, errors.NewValidationError("remote_id", "cannot be empty")
	}
	if len(card.Number) < 4 {
		return nil, errors.NewValidationError("number", "card number too short")
	}

	return &Method{
		ID:       uuid.New(),
		CardType: card.Type,
		// Only the last 4 digits are safe to store.
		Last4:     card.Number[len(card.Number)-4:],
		ExpMonth:  card.ExpMonth,
		ExpYear:   card.ExpYear,
		RemoteID:  remoteID,
		ExpiresAt: CardExpirationTime(card.ExpMonth, card.ExpYear),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// EnsureUsable fails when the card has expired. Checked before any new
// authorization or sale.
func (m *Method) EnsureUsable(now time.Time) error {
	if !now.Before(m.ExpiresAt) {
		return errors.NewDomainError(
			"payment_method_expired",
			"the provided payment method has expired",
			errors.ErrPreconditionFailed,
		)
	}
	if m.RemoteID == "" {
		return errors.NewDomainError(
			"missing_remote_id",
			"the payment method has no gateway token",
			errors.ErrPreconditionFailed,
		)
	}
	return nil
}

// CardExpirationTime returns the last instant of the card's expiry month
// in UTC. A card expiring 09/2026 is usable through September 30th.
func CardExpirationTime(month, year int) time.Time {
	firstNext := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstNext.Add(-time.Nanosecond)
}

// WireExpiry formats a card expiry as MMYY for the EXPDATE field.
func WireExpiry(month, year int) string {
	return fmt.Sprintf("%02d%02d", month, year%100)
}
