package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for payment persistence
type Repository interface {
	// Create creates a new payment
	Create(ctx context.Context, payment *Payment) error

	// GetByID retrieves a payment by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// Update updates an existing payment
	Update(ctx context.Context, payment *Payment) error

	// List lists payments with filters
	List(ctx context.Context, filter ListFilter) ([]*Payment, error)
}

// MethodRepository defines the interface for payment method persistence
type MethodRepository interface {
	// Create creates a new payment method
	Create(ctx context.Context, method *Method) error

	// GetByID retrieves a payment method by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Method, error)

	// Delete removes a payment method
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListFilter defines filters for listing payments
type ListFilter struct {
	State  *State
	Limit  int
	Offset int
}
