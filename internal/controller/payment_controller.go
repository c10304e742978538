package controller

import (
	"net/http"
	"strconv"

	paymentApp "github.com/cassiomorais/payflow/internal/application/payment"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PaymentController handles payment-related HTTP requests.
type PaymentController struct {
	createPayment  *paymentApp.CreatePaymentUseCase
	capturePayment *paymentApp.CapturePaymentUseCase
	voidPayment    *paymentApp.VoidPaymentUseCase
	refundPayment  *paymentApp.RefundPaymentUseCase
	inquiry        *paymentApp.InquiryUseCase
	paymentRepo    payment.Repository
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(
	createPayment *paymentApp.CreatePaymentUseCase,
	capturePayment *paymentApp.CapturePaymentUseCase,
	voidPayment *paymentApp.VoidPaymentUseCase,
	refundPayment *paymentApp.RefundPaymentUseCase,
	inquiry *paymentApp.InquiryUseCase,
	paymentRepo payment.Repository,
) *PaymentController {
	return &PaymentController{
		createPayment:  createPayment,
		capturePayment: capturePayment,
		voidPayment:    voidPayment,
		refundPayment:  refundPayment,
		inquiry:        inquiry,
		paymentRepo:    paymentRepo,
	}
}

// CreatePayment handles POST /api/v1/payments
func (h *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	methodID, err := uuid.Parse(req.PaymentMethodID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payment_method_id", Code: "invalid_id"})
		return
	}

	p, err := h.createPayment.Execute(r.Context(), paymentApp.CreatePaymentRequest{
		PaymentMethodID: methodID,
		AmountCents:     floatToCents(req.Amount),
		Currency:        req.Currency,
		Capture:         req.Capture,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, FromPayment(p))
}

// GetPayment handles GET /api/v1/payments/{id}
func (h *PaymentController) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	p, err := h.paymentRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromPayment(p))
}

// ListPayments handles GET /api/v1/payments
func (h *PaymentController) ListPayments(w http.ResponseWriter, r *http.Request) {
	filter := payment.ListFilter{}

	if s := r.URL.Query().Get("state"); s != "" {
		state := payment.State(s)
		filter.State = &state
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	payments, err := h.paymentRepo.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, FromPayment(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CapturePayment handles POST /api/v1/payments/{id}/capture
func (h *PaymentController) CapturePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	amount, err := optionalAmount(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.capturePayment.Execute(r.Context(), id, amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromPayment(p))
}

// VoidPayment handles POST /api/v1/payments/{id}/void
func (h *PaymentController) VoidPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	p, err := h.voidPayment.Execute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromPayment(p))
}

// RefundPayment handles POST /api/v1/payments/{id}/refund
func (h *PaymentController) RefundPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	amount, err := optionalAmount(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.refundPayment.Execute(r.Context(), id, amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromPayment(p))
}

// InquiryPayment handles GET /api/v1/payments/{id}/inquiry
func (h *PaymentController) InquiryPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	res, err := h.inquiry.Execute(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromInquiry(res))
}

func paymentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payment id", Code: "invalid_id"})
		return uuid.Nil, false
	}
	return id, true
}

// optionalAmount reads the request body for capture and refund, where an
// empty body or a missing amount means the full remaining value.
func optionalAmount(r *http.Request) (*int64, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return nil, nil
	}
	var req AmountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		return nil, err
	}
	if req.Amount == nil {
		return nil, nil
	}
	cents := floatToCents(*req.Amount)
	return &cents, nil
}
