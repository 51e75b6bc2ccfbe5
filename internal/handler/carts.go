package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dhindle/commerce-cif-commercetools/internal/ccif"
	"github.com/dhindle/commerce-cif-commercetools/internal/domain"
)

// CartPaymentService is the cart-payment orchestration the handler exposes.
type CartPaymentService interface {
	AttachPayment(ctx context.Context, cartID string, draft ccif.PaymentDraft) (*ccif.Cart, error)
	RemovePayment(ctx context.Context, cartID string) (*ccif.Cart, error)
	RemoveSpecificPayment(ctx context.Context, cartID, paymentID string) (*ccif.Cart, error)
	GetPayment(ctx context.Context, cartID string) (*ccif.Payment, error)
	GetPaymentMethods(ctx context.Context, cartID string) ([]ccif.PaymentMethod, error)
}

// CartHandler serves the cart payment endpoints.
type CartHandler struct {
	payments CartPaymentService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(payments CartPaymentService, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		payments: payments,
		validate: validator.New(),
		logger:   logger,
	}
}

// AttachPayment handles POST /carts/{id}/payment.
func (h *CartHandler) AttachPayment(w http.ResponseWriter, r *http.Request) {
	var draft ccif.PaymentDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		ErrorResponse(w, r, domain.Invalid("cart.attachPayment", "invalid request body"))
		return
	}
	if err := h.validate.Struct(draft); err != nil {
		ValidationErrorResponse(w, r, err)
		return
	}

	cart, err := h.payments.AttachPayment(r.Context(), r.PathValue("id"), draft)
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, cart)
}

// RemovePayment handles DELETE /carts/{id}/payment.
func (h *CartHandler) RemovePayment(w http.ResponseWriter, r *http.Request) {
	cart, err := h.payments.RemovePayment(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// RemoveSpecificPayment handles DELETE /carts/{id}/payments/{paymentId}.
func (h *CartHandler) RemoveSpecificPayment(w http.ResponseWriter, r *http.Request) {
	cart, err := h.payments.RemoveSpecificPayment(r.Context(), r.PathValue("id"), r.PathValue("paymentId"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// GetPayment handles GET /carts/{id}/payment.
func (h *CartHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.payments.GetPayment(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

// GetPaymentMethods handles GET /carts/{id}/payment-methods.
func (h *CartHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.payments.GetPaymentMethods(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, methods)
}
