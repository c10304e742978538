package payment_test

import (
	"context"
	"testing"

	paymentApp "github.com/cassiomorais/payflow/internal/application/payment"
	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	domainPayment "github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/cassiomorais/payflow/internal/payflow"
	"github.com/cassiomorais/payflow/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoidPayment_Approved(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway().QueueResult(testutil.ApprovedResult("VOID001"))

	p := testutil.NewAuthorizedPayment(uuid.New(), 50_00)
	require.NoError(t, paymentRepo.Create(ctx, p))

	uc := paymentApp.NewVoidPaymentUseCase(paymentRepo, gateway, payflow.NewBreaker("test"))

	updated, err := uc.Execute(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, domainPayment.StateAuthorizationVoided, updated.State)
	assert.True(t, updated.IsTerminal())

	calls := gateway.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "V", calls[0][payflow.FieldTrxType])
	assert.Equal(t, p.RemoteID, calls[0][payflow.FieldOrigID])
}

func TestVoidPayment_FromNewState_NoNetworkCall(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway()

	p := testutil.NewTestPayment(uuid.New(), 50_00)
	require.NoError(t, paymentRepo.Create(ctx, p))

	uc := paymentApp.NewVoidPaymentUseCase(paymentRepo, gateway, payflow.NewBreaker("test"))

	_, err := uc.Execute(ctx, p.ID)

	assert.ErrorIs(t, err, domainErrors.ErrInvalidState)
	assert.Zero(t, gateway.CallCount())
}

func TestVoidPayment_MissingRemoteID(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway()

	p := testutil.NewAuthorizedPayment(uuid.New(), 50_00)
	p.RemoteID = ""
	require.NoError(t, paymentRepo.Create(ctx, p))

	uc := paymentApp.NewVoidPaymentUseCase(paymentRepo, gateway, payflow.NewBreaker("test"))

	_, err := uc.Execute(ctx, p.ID)

	assert.ErrorIs(t, err, domainErrors.ErrPreconditionFailed)
	assert.Zero(t, gateway.CallCount())
}

func TestVoidPayment_Declined_NoMutation(t *testing.T) {
	ctx := context.Background()
	paymentRepo := testutil.NewMockPaymentRepository()
	gateway := testutil.NewStubGateway().
		QueueResult(testutil.DeclinedResult(payflow.ResultDeclined, "Declined"))

	p := testutil.NewAuthorizedPayment(uuid.New(), 50_00)
	require.NoError(t, paymentRepo.Create(ctx, p))

	uc := paymentApp.NewVoidPaymentUseCase(paymentRepo, gateway, payflow.NewBreaker("test"))

	_, err := uc.Execute(ctx, p.ID)
	assert.True(t, domainErrors.IsDecline(err))

	stored, err := paymentRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domainPayment.StateAuthorization, stored.State)
}
