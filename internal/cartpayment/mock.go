package cartpayment

import (
	"context"
	"fmt"

	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
)

// MockClient is a CommerceClient test double. Each method delegates to its
// Func field when set; CallLog records invocations for assertions on call
// counts and ordering.
type MockClient struct {
	GetCartFunc       func(ctx context.Context, id string) (*commercetools.Cart, error)
	UpdateCartFunc    func(ctx context.Context, id string, version int64, actions []commercetools.CartUpdateAction) (*commercetools.Cart, error)
	CreatePaymentFunc func(ctx context.Context, draft commercetools.PaymentDraft) (*commercetools.Payment, error)
	DeletePaymentFunc func(ctx context.Context, id string, version int64) error

	CallLog []string
}

// GetCart delegates to GetCartFunc.
func (m *MockClient) GetCart(ctx context.Context, id string) (*commercetools.Cart, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("GetCart(%s)", id))
	if m.GetCartFunc != nil {
		return m.GetCartFunc(ctx, id)
	}
	return nil, fmt.Errorf("GetCartFunc not set")
}

// UpdateCart delegates to UpdateCartFunc.
func (m *MockClient) UpdateCart(ctx context.Context, id string, version int64, actions []commercetools.CartUpdateAction) (*commercetools.Cart, error) {
	action := ""
	if len(actions) > 0 {
		action = actions[0].Action
	}
	m.CallLog = append(m.CallLog, fmt.Sprintf("UpdateCart(%s, v%d, %s)", id, version, action))
	if m.UpdateCartFunc != nil {
		return m.UpdateCartFunc(ctx, id, version, actions)
	}
	return nil, fmt.Errorf("UpdateCartFunc not set")
}

// CreatePayment delegates to CreatePaymentFunc.
func (m *MockClient) CreatePayment(ctx context.Context, draft commercetools.PaymentDraft) (*commercetools.Payment, error) {
	m.CallLog = append(m.CallLog, "CreatePayment")
	if m.CreatePaymentFunc != nil {
		return m.CreatePaymentFunc(ctx, draft)
	}
	return nil, fmt.Errorf("CreatePaymentFunc not set")
}

// DeletePayment delegates to DeletePaymentFunc.
func (m *MockClient) DeletePayment(ctx context.Context, id string, version int64) error {
	m.CallLog = append(m.CallLog, fmt.Sprintf("DeletePayment(%s, v%d)", id, version))
	if m.DeletePaymentFunc != nil {
		return m.DeletePaymentFunc(ctx, id, version)
	}
	return nil
}

// Called reports how many logged calls start with prefix.
func (m *MockClient) Called(prefix string) int {
	n := 0
	for _, call := range m.CallLog {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
