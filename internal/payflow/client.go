package payflow

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cassiomorais/payflow/internal/domain/errors"
	"github.com/rs/zerolog"
)

const (
	// Payflow test API URL.
	TestAPIURL = "https://pilot-payflowpro.paypal.com"

	// Payflow production API URL.
	ProductionAPIURL = "https://payflowpro.paypal.com"

	contentType = "text/namevalue"

	// DefaultTimeout bounds a single transaction exchange. The gateway has
	// no idempotency key, so a request left hanging forever is worse than
	// one that fails fast and is surfaced as a transient failure.
	DefaultTimeout = 30 * time.Second
)

// Mode selects the gateway environment.
type Mode string

const (
	ModeTest       Mode = "test"
	ModeProduction Mode = "production"
)

// Credentials identifies the merchant account on every request.
type Credentials struct {
	Partner  string
	Vendor   string
	User     string
	Password string
}

// Config holds the immutable client configuration.
type Config struct {
	Credentials Credentials
	Mode        Mode
	// Timeout bounds each transaction exchange; DefaultTimeout when zero.
	Timeout time.Duration
	// BaseURL overrides the mode-selected endpoint. Tests only.
	BaseURL string
}

// Result is the structured outcome of one transaction.
type Result struct {
	Code    ResultCode
	Outcome Outcome
	Message string
	PNRef   string
	Raw     Response
}

// TransState returns the settlement state reported on verbose responses.
func (r *Result) TransState() (TransactionState, bool) {
	v, ok := r.Raw[FieldTransState]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return TransactionState(n), true
}

// Client executes single synchronous transactions against the gateway.
// It is stateless apart from its immutable configuration and holds no
// references to payments; callers apply state transitions after
// interpreting the Result.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a gateway client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "payflow_client").Logger(),
	}
}

// APIURL returns the endpoint selected by the operating mode.
func (c *Client) APIURL() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	if c.cfg.Mode == ModeTest {
		return TestAPIURL
	}
	return ProductionAPIURL
}

// withDefaults merges the credential and tender defaults into the caller's
// parameters. Caller values win on conflict.
func (c *Client) withDefaults(params Params) Params {
	merged := Params{
		FieldTender:   string(TenderCreditCard),
		FieldPartner:  c.cfg.Credentials.Partner,
		FieldVendor:   c.cfg.Credentials.Vendor,
		FieldUser:     c.cfg.Credentials.User,
		FieldPassword: c.cfg.Credentials.Password,
	}
	for k, v := range params {
		merged[strings.ToLower(k)] = v
	}
	return merged
}

// Execute posts one transaction to the gateway and returns its decoded,
// classified result. A non-approved result code is not an error here; the
// caller decides how to treat the outcome class per operation. Errors mean
// the exchange itself failed: validation, transport (ErrGatewayUnavailable)
// or an unparseable body (ErrMalformedResponse). No retries are performed.
func (c *Client) Execute(ctx context.Context, params Params) (*Result, error) {
	body, err := Encode(c.withDefaults(params))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL(), strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("trxtype", params[FieldTrxType]).Msg("gateway request failed")
		return nil, errors.NewDomainError(
			"gateway_unavailable",
			"could not reach the payment gateway",
			errors.ErrGatewayUnavailable,
		)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewDomainError(
			"gateway_unavailable",
			"could not read the gateway response",
			errors.ErrGatewayUnavailable,
		)
	}

	data, decodeErr := Decode(string(raw))
	if decodeErr != nil {
		// A failed HTTP status with an unparseable body is a transport
		// problem, not a protocol one.
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			c.logger.Warn().Int("status", resp.StatusCode).Msg("gateway returned non-2xx")
			return nil, errors.NewDomainError(
				"gateway_unavailable",
				"gateway returned status "+strconv.Itoa(resp.StatusCode),
				errors.ErrGatewayUnavailable,
			)
		}
		return nil, decodeErr
	}

	codeStr, ok := data[FieldResult]
	if !ok {
		return nil, errors.NewDomainError(
			"malformed_response",
			"response is missing the RESULT field",
			errors.ErrMalformedResponse,
		)
	}
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return nil, errors.NewDomainError(
			"malformed_response",
			"RESULT field is not numeric",
			errors.ErrMalformedResponse,
		)
	}

	result := &Result{
		Code:    ResultCode(code),
		Outcome: ResultCode(code).Classify(),
		Message: data[FieldRespMsg],
		PNRef:   data[FieldPNRef],
		Raw:     data,
	}

	c.logger.Info().
		Str("trxtype", params[FieldTrxType]).
		Int("result", code).
		Str("outcome", result.Outcome.String()).
		Str("pnref", result.PNRef).
		Dur("duration", time.Since(start)).
		Msg("transaction executed")

	return result, nil
}
