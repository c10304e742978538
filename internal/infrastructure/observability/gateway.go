package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/cassiomorais/payflow/internal/payflow"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// gatewayExecutor is satisfied by payflow.Client.
type gatewayExecutor interface {
	Execute(ctx context.Context, params payflow.Params) (*payflow.Result, error)
}

// InstrumentedGateway decorates gateway exchanges with metrics and a span.
// It records only the transaction type and the outcome class; parameter
// values never reach a label or a span attribute.
type InstrumentedGateway struct {
	next    gatewayExecutor
	metrics *Metrics
	tracer  trace.Tracer
}

// NewInstrumentedGateway wraps next with observability.
func NewInstrumentedGateway(next gatewayExecutor, metrics *Metrics) *InstrumentedGateway {
	return &InstrumentedGateway{
		next:    next,
		metrics: metrics,
		tracer:  otel.Tracer("payflow/gateway"),
	}
}

// Execute forwards the transaction and records its outcome.
func (g *InstrumentedGateway) Execute(ctx context.Context, params payflow.Params) (*payflow.Result, error) {
	trxtype := params[payflow.FieldTrxType]

	ctx, span := g.tracer.Start(ctx, "payflow.execute",
		trace.WithAttributes(attribute.String("payflow.trxtype", trxtype)),
	)
	defer span.End()

	start := time.Now()
	res, err := g.next.Execute(ctx, params)
	g.metrics.TransactionDuration.WithLabelValues(trxtype).Observe(time.Since(start).Seconds())

	if err != nil {
		g.metrics.TransactionsTotal.WithLabelValues(trxtype, "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "gateway exchange failed")
		return nil, err
	}

	outcome := res.Outcome.String()
	g.metrics.TransactionsTotal.WithLabelValues(trxtype, outcome).Inc()
	if res.Outcome != payflow.OutcomeApproved {
		g.metrics.DeclinesTotal.WithLabelValues(trxtype, strconv.Itoa(int(res.Code))).Inc()
	}
	span.SetAttributes(
		attribute.String("payflow.outcome", outcome),
		attribute.Int("payflow.result", int(res.Code)),
	)

	return res, nil
}
