package testutil

import (
	"context"
	"sync"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/cassiomorais/payflow/internal/payflow"
	"github.com/google/uuid"
)

// --- Payment Repository Mock ---

// MockPaymentRepository is an in-memory mock of payment.Repository.
type MockPaymentRepository struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*payment.Payment
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{payments: make(map[uuid.UUID]*payment.Payment)}
}

func (r *MockPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil, domainErrors.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[p.ID]; !ok {
		return domainErrors.ErrPaymentNotFound
	}
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *MockPaymentRepository) List(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*payment.Payment
	for _, p := range r.payments {
		if filter.State != nil && p.State != *filter.State {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// --- Payment Method Repository Mock ---

// MockMethodRepository is an in-memory mock of payment.MethodRepository.
type MockMethodRepository struct {
	mu      sync.Mutex
	methods map[uuid.UUID]*payment.Method
}

func NewMockMethodRepository() *MockMethodRepository {
	return &MockMethodRepository{methods: make(map[uuid.UUID]*payment.Method)}
}

func (r *MockMethodRepository) Create(ctx context.Context, m *payment.Method) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.methods[m.ID] = &cp
	return nil
}

func (r *MockMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Method, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.methods[id]
	if !ok {
		return nil, domainErrors.ErrPaymentMethodNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *MockMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.methods[id]; !ok {
		return domainErrors.ErrPaymentMethodNotFound
	}
	delete(r.methods, id)
	return nil
}

// AddMethod seeds a method without going through tokenization.
func (r *MockMethodRepository) AddMethod(m *payment.Method) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.methods[m.ID] = &cp
}

// --- Stub Gateway ---

// StubGateway is a scripted Gateway that records every invocation, so
// tests can assert that precondition failures never reach the transport.
type StubGateway struct {
	mu      sync.Mutex
	calls   []payflow.Params
	results []stubStep
}

type stubStep struct {
	result *payflow.Result
	err    error
}

func NewStubGateway() *StubGateway {
	return &StubGateway{}
}

// QueueResult scripts the next successful exchange.
func (g *StubGateway) QueueResult(res *payflow.Result) *StubGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.results = append(g.results, stubStep{result: res})
	return g
}

// QueueError scripts the next failing exchange.
func (g *StubGateway) QueueError(err error) *StubGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.results = append(g.results, stubStep{err: err})
	return g
}

func (g *StubGateway) Execute(ctx context.Context, params payflow.Params) (*payflow.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cp := make(payflow.Params, len(params))
	for k, v := range params {
		cp[k] = v
	}
	g.calls = append(g.calls, cp)

	if len(g.results) == 0 {
		return ApprovedResult("STUB00000001"), nil
	}
	step := g.results[0]
	g.results = g.results[1:]
	return step.result, step.err
}

// Calls returns the recorded invocations.
func (g *StubGateway) Calls() []payflow.Params {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]payflow.Params, len(g.calls))
	copy(out, g.calls)
	return out
}

// CallCount returns how many transactions reached the stub.
func (g *StubGateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// ApprovedResult builds an approved gateway result carrying pnref.
func ApprovedResult(pnref string) *payflow.Result {
	return &payflow.Result{
		Code:    payflow.ResultApproved,
		Outcome: payflow.OutcomeApproved,
		Message: "Approved",
		PNRef:   pnref,
		Raw: payflow.Response{
			payflow.FieldResult:  "0",
			payflow.FieldRespMsg: "Approved",
			payflow.FieldPNRef:   pnref,
		},
	}
}

// DeclinedResult builds a declined gateway result.
func DeclinedResult(code payflow.ResultCode, message string) *payflow.Result {
	return &payflow.Result{
		Code:    code,
		Outcome: code.Classify(),
		Message: message,
		Raw:     payflow.Response{payflow.FieldRespMsg: message},
	}
}
