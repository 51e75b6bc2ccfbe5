package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhindle/commerce-cif-commercetools/internal/ccif"
	"github.com/dhindle/commerce-cif-commercetools/internal/domain"
)

type mockCartPaymentService struct {
	AttachPaymentFunc         func(ctx context.Context, cartID string, draft ccif.PaymentDraft) (*ccif.Cart, error)
	RemovePaymentFunc         func(ctx context.Context, cartID string) (*ccif.Cart, error)
	RemoveSpecificPaymentFunc func(ctx context.Context, cartID, paymentID string) (*ccif.Cart, error)
	GetPaymentFunc            func(ctx context.Context, cartID string) (*ccif.Payment, error)
	GetPaymentMethodsFunc     func(ctx context.Context, cartID string) ([]ccif.PaymentMethod, error)
}

func (m *mockCartPaymentService) AttachPayment(ctx context.Context, cartID string, draft ccif.PaymentDraft) (*ccif.Cart, error) {
	return m.AttachPaymentFunc(ctx, cartID, draft)
}

func (m *mockCartPaymentService) RemovePayment(ctx context.Context, cartID string) (*ccif.Cart, error) {
	return m.RemovePaymentFunc(ctx, cartID)
}

func (m *mockCartPaymentService) RemoveSpecificPayment(ctx context.Context, cartID, paymentID string) (*ccif.Cart, error) {
	return m.RemoveSpecificPaymentFunc(ctx, cartID, paymentID)
}

func (m *mockCartPaymentService) GetPayment(ctx context.Context, cartID string) (*ccif.Payment, error) {
	return m.GetPaymentFunc(ctx, cartID)
}

func (m *mockCartPaymentService) GetPaymentMethods(ctx context.Context, cartID string) ([]ccif.PaymentMethod, error) {
	return m.GetPaymentMethodsFunc(ctx, cartID)
}

func newCartMux(svc CartPaymentService) *http.ServeMux {
	h := NewCartHandler(svc, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /carts/{id}/payment", h.AttachPayment)
	mux.HandleFunc("GET /carts/{id}/payment", h.GetPayment)
	mux.HandleFunc("DELETE /carts/{id}/payment", h.RemovePayment)
	mux.HandleFunc("DELETE /carts/{id}/payments/{paymentId}", h.RemoveSpecificPayment)
	mux.HandleFunc("GET /carts/{id}/payment-methods", h.GetPaymentMethods)
	return mux
}

func TestAttachPaymentEndpoint(t *testing.T) {
	t.Run("creates the payment and returns the cart", func(t *testing.T) {
		svc := &mockCartPaymentService{
			AttachPaymentFunc: func(ctx context.Context, cartID string, draft ccif.PaymentDraft) (*ccif.Cart, error) {
				assert.Equal(t, "cart-1-3", cartID)
				assert.Equal(t, "credit-card", draft.Method)
				return &ccif.Cart{ID: "cart-1-4"}, nil
			},
		}

		body := strings.NewReader(`{"method":"credit-card","amount":{"amount":1500,"currency":"USD"}}`)
		req := httptest.NewRequest(http.MethodPost, "/carts/cart-1-3/payment", body)
		rec := httptest.NewRecorder()
		newCartMux(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "cart-1-4")
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		svc := &mockCartPaymentService{
			AttachPaymentFunc: func(ctx context.Context, cartID string, draft ccif.PaymentDraft) (*ccif.Cart, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/carts/cart-1/payment", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		newCartMux(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a draft without a method", func(t *testing.T) {
		svc := &mockCartPaymentService{
			AttachPaymentFunc: func(ctx context.Context, cartID string, draft ccif.PaymentDraft) (*ccif.Cart, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/carts/cart-1/payment", strings.NewReader(`{"token":"tok_123"}`))
		rec := httptest.NewRecorder()
		newCartMux(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Method")
	})

	t.Run("maps an existing payment to 400", func(t *testing.T) {
		svc := &mockCartPaymentService{
			AttachPaymentFunc: func(ctx context.Context, cartID string, draft ccif.PaymentDraft) (*ccif.Cart, error) {
				return nil, domain.ErrPaymentAlreadySet
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/carts/cart-1/payment", strings.NewReader(`{"method":"credit-card"}`))
		rec := httptest.NewRecorder()
		newCartMux(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "A payment is already set on the cart")
	})
}

func TestRemovePaymentEndpoint(t *testing.T) {
	t.Run("returns the cart after removal", func(t *testing.T) {
		svc := &mockCartPaymentService{
			RemovePaymentFunc: func(ctx context.Context, cartID string) (*ccif.Cart, error) {
				assert.Equal(t, "cart-1-3", cartID)
				return &ccif.Cart{ID: "cart-1-4"}, nil
			},
		}

		req := httptest.NewRequest(http.MethodDelete, "/carts/cart-1-3/payment", nil)
		rec := httptest.NewRecorder()
		newCartMux(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "cart-1-4")
	})

	t.Run("maps a stale version to 409", func(t *testing.T) {
		svc := &mockCartPaymentService{
			RemovePaymentFunc: func(ctx context.Context, cartID string) (*ccif.Cart, error) {
				return nil, domain.Conflict("cart.removePayment", "cart version is stale")
			},
		}

		req := httptest.NewRequest(http.MethodDelete, "/carts/cart-1-3/payment", nil)
		rec := httptest.NewRecorder()
		newCartMux(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRemoveSpecificPaymentEndpoint(t *testing.T) {
	svc := &mockCartPaymentService{
		RemoveSpecificPaymentFunc: func(ctx context.Context, cartID, paymentID string) (*ccif.Cart, error) {
			assert.Equal(t, "cart-1-3", cartID)
			assert.Equal(t, "pay-9", paymentID)
			return &ccif.Cart{ID: "cart-1-4"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/carts/cart-1-3/payments/pay-9", nil)
	rec := httptest.NewRecorder()
	newCartMux(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPaymentEndpoint(t *testing.T) {
	svc := &mockCartPaymentService{
		GetPaymentFunc: func(ctx context.Context, cartID string) (*ccif.Payment, error) {
			return &ccif.Payment{ID: "pay-9", Method: "credit-card"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/carts/cart-1-3/payment", nil)
	rec := httptest.NewRecorder()
	newCartMux(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "credit-card")
}

func TestGetPaymentMethodsEndpoint(t *testing.T) {
	svc := &mockCartPaymentService{
		GetPaymentMethodsFunc: func(ctx context.Context, cartID string) ([]ccif.PaymentMethod, error) {
			return []ccif.PaymentMethod{{ID: "credit-card", Name: "Credit Card"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/carts/cart-1-3/payment-methods", nil)
	rec := httptest.NewRecorder()
	newCartMux(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Credit Card")
}
