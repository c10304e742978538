package controller

import (
	"net/http"

	paymentApp "github.com/cassiomorais/payflow/internal/application/payment"
	"github.com/cassiomorais/payflow/internal/domain/payment"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PaymentMethodController handles payment method HTTP requests.
type PaymentMethodController struct {
	createMethod *paymentApp.CreateMethodUseCase
	methodRepo   payment.MethodRepository
}

// NewPaymentMethodController creates a new PaymentMethodController.
func NewPaymentMethodController(
	createMethod *paymentApp.CreateMethodUseCase,
	methodRepo payment.MethodRepository,
) *PaymentMethodController {
	return &PaymentMethodController{
		createMethod: createMethod,
		methodRepo:   methodRepo,
	}
}

// CreateMethod handles POST /api/v1/payment-methods
func (h *PaymentMethodController) CreateMethod(w http.ResponseWriter, r *http.Request) {
	var req CreateMethodRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	method, err := h.createMethod.Execute(r.Context(), paymentApp.CreateMethodRequest{
		Card: payment.CardDetails{
			Type:         req.CardType,
			Number:       req.CardNumber,
			ExpMonth:     req.ExpMonth,
			ExpYear:      req.ExpYear,
			SecurityCode: req.SecurityCode,
		},
		Billing: payment.BillingAddress{
			Email:      req.Email,
			GivenName:  req.GivenName,
			FamilyName: req.FamilyName,
			Street:     req.Street,
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
			Country:    req.Country,
		},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, FromMethod(method))
}

// GetMethod handles GET /api/v1/payment-methods/{id}
func (h *PaymentMethodController) GetMethod(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payment method id", Code: "invalid_id"})
		return
	}

	method, err := h.methodRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromMethod(method))
}

// DeleteMethod handles DELETE /api/v1/payment-methods/{id}
func (h *PaymentMethodController) DeleteMethod(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payment method id", Code: "invalid_id"})
		return
	}

	if err := h.methodRepo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
