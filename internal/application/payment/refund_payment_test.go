package payment_test

import (
	"context"
	"testing"
	"time"

	paymentApp "github.com/cassiomorais/payflow/internal/application/payment"
	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	domainPayment "github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/cassiomorais/payflow/internal/payflow"
	"github.com/cassiomorais/payflow/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refundUC(repo *testutil.MockPaymentRepository, gw *testutil.StubGateway) *paymentApp.RefundPaymentUseCase {
	return paymentApp.NewRefundPaymentUseCase(repo, gw, payflow.NewBreaker("test"), testutil.NewFixedClock())
}

func TestRefundPayment_FullRefund(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway().QueueResult(testutil.ApprovedResult("REF001"))

	p := testutil.NewCapturedPayment(uuid.New(), 100_00)
	require.NoError(t, paymentRepo.Create(ctx, p))

	updated, err := refundUC(paymentRepo, gateway).Execute(ctx, p.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, domainPayment.StateCaptureRefunded, updated.State)
	assert.Zero(t, updated.Balance())

	calls := gateway.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "C", calls[0][payflow.FieldTrxType])
	assert.Equal(t, "100.00", calls[0][payflow.FieldAmount])
}

func TestRefundPayment_TwoPartialsReachingAmount(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway().
		QueueResult(testutil.ApprovedResult("REF001")).
		QueueResult(testutil.ApprovedResult("REF002"))

	p := testutil.NewCapturedPayment(uuid.New(), 100_00)
	require.NoError(t, paymentRepo.Create(ctx, p))

	uc := refundUC(paymentRepo, gateway)

	first := int64(40_00)
	updated, err := uc.Execute(ctx, p.ID, &first)
	require.NoError(t, err)
	assert.Equal(t, domainPayment.StateCapturePartiallyRefunded, updated.State)

	second := int64(60_00)
	updated, err = uc.Execute(ctx, p.ID, &second)
	require.NoError(t, err)
	assert.Equal(t, domainPayment.StateCaptureRefunded, updated.State)
	assert.Zero(t, updated.Balance())
}

func TestRefundPayment_PartialSumBelowAmount(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway().
		QueueResult(testutil.ApprovedResult("REF001")).
		QueueResult(testutil.ApprovedResult("REF002"))

	p := testutil.NewCapturedPayment(uuid.New(), 100_00)
	require.NoError(t, paymentRepo.Create(ctx, p))

	uc := refundUC(paymentRepo, gateway)

	amount := int64(30_00)
	_, err := uc.Execute(ctx, p.ID, &amount)
	require.NoError(t, err)

	updated, err := uc.Execute(ctx, p.ID, &amount)
	require.NoError(t, err)

	assert.Equal(t, domainPayment.StateCapturePartiallyRefunded, updated.State)
	assert.Equal(t, int64(40_00), updated.Balance())
}

func TestRefundPayment_ExceedsBalance_NoNetworkCall(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway()

	p := testutil.NewCapturedPayment(uuid.New(), 100_00)
	p.RefundedCents = 80_00
	p.State = domainPayment.StateCapturePartiallyRefunded
	require.NoError(t, paymentRepo.Create(ctx, p))

	amount := int64(30_00)
	_, err := refundUC(paymentRepo, gateway).Execute(ctx, p.ID, &amount)

	assert.ErrorIs(t, err, domainErrors.ErrPreconditionFailed)
	assert.Zero(t, gateway.CallCount(), "balance check must run before any network call")
}

func TestRefundPayment_OutsideWindow(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway()

	p := testutil.NewCapturedPayment(uuid.New(), 100_00)
	old := testutil.FixedTime.Add(-181 * 24 * time.Hour)
	p.CapturedAt = &old
	require.NoError(t, paymentRepo.Create(ctx, p))

	_, err := refundUC(paymentRepo, gateway).Execute(ctx, p.ID, nil)

	assert.ErrorIs(t, err, domainErrors.ErrPreconditionFailed)
	assert.Zero(t, gateway.CallCount())
}

func TestRefundPayment_FromNewState(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway()

	p := testutil.NewTestPayment(uuid.New(), 100_00)
	require.NoError(t, paymentRepo.Create(ctx, p))

	_, err := refundUC(paymentRepo, gateway).Execute(ctx, p.ID, nil)

	assert.ErrorIs(t, err, domainErrors.ErrInvalidState)
	assert.Zero(t, gateway.CallCount())
}

func TestRefundPayment_Declined_NoMutation(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway().
		QueueResult(testutil.DeclinedResult(payflow.ResultCreditError, "Credit error"))

	p := testutil.NewCapturedPayment(uuid.New(), 100_00)
	require.NoError(t, paymentRepo.Create(ctx, p))

	_, err := refundUC(paymentRepo, gateway).Execute(ctx, p.ID, nil)
	assert.True(t, domainErrors.IsDecline(err))

	stored, err := paymentRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domainPayment.StateCaptureCompleted, stored.State)
	assert.Zero(t, stored.RefundedCents)
}
