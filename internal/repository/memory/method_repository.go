package memory

import (
	"context"
	"sync"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/google/uuid"
)

// MethodRepository implements payment.MethodRepository with an in-process
// map. Only tokenized card summaries live here; raw card data never does.
type MethodRepository struct {
	mu      sync.RWMutex
	methods map[uuid.UUID]*payment.Method
}

// NewMethodRepository creates a new MethodRepository.
func NewMethodRepository() *MethodRepository {
	return &MethodRepository{methods: make(map[uuid.UUID]*payment.Method)}
}

// Create inserts a new payment method.
func (r *MethodRepository) Create(ctx context.Context, m *payment.Method) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.methods[m.ID]; ok {
		return domainErrors.NewDomainError(
			"duplicate_payment_method",
			"a payment method with this id already exists",
			domainErrors.ErrInvalidInput,
		)
	}
	cp := *m
	r.methods[m.ID] = &cp
	return nil
}

// GetByID retrieves a payment method by its ID.
func (r *MethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.methods[id]
	if !ok {
		return nil, domainErrors.ErrPaymentMethodNotFound
	}
	cp := *m
	return &cp, nil
}

// Delete removes a payment method.
func (r *MethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.methods[id]; !ok {
		return domainErrors.ErrPaymentMethodNotFound
	}
	delete(r.methods, id)
	return nil
}
