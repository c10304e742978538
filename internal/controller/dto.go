package controller

import (
	"time"

	paymentApp "github.com/cassiomorais/payflow/internal/application/payment"
	"github.com/cassiomorais/payflow/internal/domain/payment"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (float64 for money, string for IDs,
// validation tags). Controllers convert these to application layer DTOs
// before calling business logic. Card data passes through and is never
// echoed back in a response.

// CreateMethodRequest holds the input for tokenizing a card.
type CreateMethodRequest struct {
	CardType     string `json:"card_type" validate:"required"`
	CardNumber   string `json:"card_number" validate:"required,credit_card"`
	ExpMonth     int    `json:"exp_month" validate:"required,min=1,max=12"`
	ExpYear      int    `json:"exp_year" validate:"required,min=2000"`
	SecurityCode string `json:"security_code" validate:"required,numeric,min=3,max=4"`

	Email      string `json:"email" validate:"omitempty,email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CreatePaymentRequest holds the input for authorizing or selling.
type CreatePaymentRequest struct {
	PaymentMethodID string  `json:"payment_method_id" validate:"required,uuid"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Currency        string  `json:"currency" validate:"required,len=3"`
	Capture         bool    `json:"capture"`
}

// AmountRequest carries the optional amount for captures and refunds.
// A missing amount means "the full remaining value".
type AmountRequest struct {
	Amount *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
}

// --- Response DTOs ---

// MethodResponse represents a stored payment method in API responses.
type MethodResponse struct {
	ID        string    `json:"id"`
	CardType  string    `json:"card_type"`
	Last4     string    `json:"last4"`
	ExpMonth  int       `json:"exp_month"`
	ExpYear   int       `json:"exp_year"`
	Token     string    `json:"token"`
	Test      bool      `json:"test"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID                     string     `json:"id"`
	PaymentMethodID        string     `json:"payment_method_id"`
	Amount                 float64    `json:"amount"`
	RefundedAmount         float64    `json:"refunded_amount"`
	Balance                float64    `json:"balance"`
	Currency               string     `json:"currency"`
	State                  string     `json:"state"`
	RemoteID               string     `json:"remote_id,omitempty"`
	Test                   bool       `json:"test"`
	AuthorizedAt           *time.Time `json:"authorized_at,omitempty"`
	AuthorizationExpiresAt *time.Time `json:"authorization_expires_at,omitempty"`
	CapturedAt             *time.Time `json:"captured_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// InquiryResponse represents the gateway-side transaction status.
type InquiryResponse struct {
	PNRef            string `json:"pnref"`
	Result           int    `json:"result"`
	Message          string `json:"message"`
	TransactionState string `json:"transaction_state,omitempty"`
}

// ErrorResponse represents an error response. Result carries the gateway
// result code on declines.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Result *int   `json:"result,omitempty"`
}

// --- Conversion helpers ---

// FromMethod converts a stored payment method to API response.
func FromMethod(m *payment.Method) *MethodResponse {
	return &MethodResponse{
		ID:        m.ID.String(),
		CardType:  m.CardType,
		Last4:     m.Last4,
		ExpMonth:  m.ExpMonth,
		ExpYear:   m.ExpYear,
		Token:     m.RemoteID,
		Test:      m.Test,
		CreatedAt: m.CreatedAt,
	}
}

// FromPayment converts a domain payment to API response.
func FromPayment(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                     p.ID.String(),
		PaymentMethodID:        p.PaymentMethodID.String(),
		Amount:                 centsToFloat(p.Amount.ValueCents),
		RefundedAmount:         centsToFloat(p.RefundedCents),
		Balance:                centsToFloat(p.Balance()),
		Currency:               p.Amount.Currency,
		State:                  string(p.State),
		RemoteID:               p.RemoteID,
		Test:                   p.Test,
		AuthorizedAt:           p.AuthorizedAt,
		AuthorizationExpiresAt: p.AuthorizationExpiresAt,
		CapturedAt:             p.CapturedAt,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

// FromInquiry converts an inquiry outcome to API response.
func FromInquiry(res *paymentApp.InquiryResult) *InquiryResponse {
	out := &InquiryResponse{
		PNRef:   res.PNRef,
		Result:  int(res.Result),
		Message: res.Message,
	}
	if res.StateKnown {
		out.TransactionState = res.TransState.String()
	}
	return out
}

// floatToCents converts a float dollar amount to cents.
func floatToCents(f float64) int64 {
	return int64(f*100 + 0.5)
}

// centsToFloat converts cents to a float dollar amount.
func centsToFloat(cents int64) float64 {
	return float64(cents) / 100.0
}
