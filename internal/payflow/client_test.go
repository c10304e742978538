package payflow

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainErrors "github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		Credentials: Credentials{
			Partner:  "PayPal",
			Vendor:   "acme",
			User:     "acme",
			Password: "secret",
		},
		Mode:    ModeTest,
		BaseURL: srv.URL,
	}, zerolog.Nop())

	return client, srv
}

func TestClient_Execute_Approved(t *testing.T) {
	var gotBody string
	var gotContentType string

	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		io.WriteString(w, "RESULT=0&PNREF=V19A2A191460&RESPMSG=Approved&TRANSSTATE=3")
	})

	res, err := client.Execute(context.Background(), Params{
		FieldTrxType: string(TrxAuthorization),
		FieldAmount:  "25.00",
	})
	require.NoError(t, err)

	assert.Equal(t, ResultApproved, res.Code)
	assert.Equal(t, OutcomeApproved, res.Outcome)
	assert.Equal(t, "V19A2A191460", res.PNRef)
	assert.Equal(t, "Approved", res.Message)

	state, ok := res.TransState()
	require.True(t, ok)
	assert.Equal(t, StateAuthorizationApproved, state)

	assert.Equal(t, "text/namevalue", gotContentType)

	decoded, err := Decode(gotBody)
	require.NoError(t, err)
	assert.Equal(t, "A", decoded["trxtype"])
	assert.Equal(t, "25.00", decoded["amt"])
	// Credential and tender defaults are injected.
	assert.Equal(t, "C", decoded["tender"])
	assert.Equal(t, "PayPal", decoded["partner"])
	assert.Equal(t, "acme", decoded["vendor"])
	assert.Equal(t, "secret", decoded["pwd"])
}

func TestClient_Execute_CallerValuesWin(t *testing.T) {
	var gotBody string
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		io.WriteString(w, "RESULT=0&PNREF=X&RESPMSG=Approved")
	})

	_, err := client.Execute(context.Background(), Params{
		FieldTrxType: string(TrxSale),
		FieldTender:  string(TenderPayPal),
	})
	require.NoError(t, err)

	decoded, err := Decode(gotBody)
	require.NoError(t, err)
	assert.Equal(t, "P", decoded["tender"])
}

func TestClient_Execute_Declined(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "RESULT=12&RESPMSG=Declined")
	})

	res, err := client.Execute(context.Background(), Params{FieldTrxType: string(TrxSale)})
	require.NoError(t, err)

	assert.Equal(t, ResultDeclined, res.Code)
	assert.Equal(t, OutcomeDeclined, res.Outcome)
	assert.Equal(t, "Declined", res.Message)
	assert.Empty(t, res.PNRef)
}

func TestClient_Execute_MalformedBody(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not a namevalue body")
	})

	_, err := client.Execute(context.Background(), Params{FieldTrxType: string(TrxSale)})
	assert.ErrorIs(t, err, domainErrors.ErrMalformedResponse)
}

func TestClient_Execute_MissingResultField(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "RESPMSG=Approved&PNREF=ABC")
	})

	_, err := client.Execute(context.Background(), Params{FieldTrxType: string(TrxSale)})
	assert.ErrorIs(t, err, domainErrors.ErrMalformedResponse)
}

func TestClient_Execute_NonOKUnparseable(t *testing.T) {
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.Execute(context.Background(), Params{FieldTrxType: string(TrxSale)})
	assert.ErrorIs(t, err, domainErrors.ErrGatewayUnavailable)
	assert.False(t, domainErrors.IsDecline(err))
}

func TestClient_Execute_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		io.WriteString(w, "RESULT=0&RESPMSG=Approved")
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		Mode:    ModeTest,
		BaseURL: srv.URL,
		Timeout: 20 * time.Millisecond,
	}, zerolog.Nop())

	_, err := client.Execute(context.Background(), Params{FieldTrxType: string(TrxSale)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrGatewayUnavailable)
	assert.False(t, domainErrors.IsDecline(err))
}

func TestClient_Execute_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	client := NewClient(Config{Mode: ModeTest, BaseURL: srv.URL}, zerolog.Nop())

	_, err := client.Execute(context.Background(), Params{FieldTrxType: string(TrxSale)})
	assert.ErrorIs(t, err, domainErrors.ErrGatewayUnavailable)
}

func TestClient_Execute_RejectsDelimiterValues(t *testing.T) {
	called := false
	client, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Execute(context.Background(), Params{
		FieldTrxType: string(TrxSale),
		"comment1":   "tools&dies",
	})
	require.Error(t, err)
	assert.False(t, called, "no request should reach the gateway")
}

func TestClient_APIURL(t *testing.T) {
	test := NewClient(Config{Mode: ModeTest}, zerolog.Nop())
	prod := NewClient(Config{Mode: ModeProduction}, zerolog.Nop())

	assert.Equal(t, TestAPIURL, test.APIURL())
	assert.Equal(t, ProductionAPIURL, prod.APIURL())
}
