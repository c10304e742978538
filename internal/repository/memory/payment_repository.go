package memory

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/google/uuid"
)

// PaymentRepository implements payment.Repository with an in-process map.
// Every read and write works on copies so callers can never mutate stored
// state without going through Update.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]*payment.Payment
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[uuid.UUID]*payment.Payment)}
}

// Create inserts a new payment.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[p.ID]; ok {
		return domainErrors.NewDomainError(
			"duplicate_payment",
			"a payment with this id already exists",
			domainErrors.ErrInvalidInput,
		)
	}
	r.payments[p.ID] = clonePayment(p)
	return nil
}

// GetByID retrieves a payment by its ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, domainErrors.ErrPaymentNotFound
	}
	return clonePayment(p), nil
}

// Update replaces an existing payment.
func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[p.ID]; !ok {
		return domainErrors.ErrPaymentNotFound
	}
	r.payments[p.ID] = clonePayment(p)
	return nil
}

// List lists payments with optional filters, newest first.
func (r *PaymentRepository) List(ctx context.Context, f payment.ListFilter) ([]*payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*payment.Payment
	for _, p := range r.payments {
		if f.State != nil && p.State != *f.State {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		// Stable tie-break so pagination never skips entries.
		return matched[i].ID.String() < matched[j].ID.String()
	})

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]*payment.Payment, 0, end-offset)
	for _, p := range matched[offset:end] {
		out = append(out, clonePayment(p))
	}
	return out, nil
}

func clonePayment(p *payment.Payment) *payment.Payment {
	cp := *p
	if p.AuthorizedAt != nil {
		t := *p.AuthorizedAt
		cp.AuthorizedAt = &t
	}
	if p.AuthorizationExpiresAt != nil {
		t := *p.AuthorizationExpiresAt
		cp.AuthorizationExpiresAt = &t
	}
	if p.CapturedAt != nil {
		t := *p.CapturedAt
		cp.CapturedAt = &t
	}
	return &cp
}
