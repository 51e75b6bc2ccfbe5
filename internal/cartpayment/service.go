// Package cartpayment orchestrates payment attachment and removal against a
// remote cart. Each operation is a short fixed sequence of remote calls; the
// cart's optimistic concurrency version is read once per operation and
// threaded through as a plain value, never stored on the service. Consistency
// is delegated to the remote store's version check: a stale version fails
// the operation and is never retried here.
package cartpayment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dhindle/commerce-cif-commercetools/internal/ccif"
	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
	"github.com/dhindle/commerce-cif-commercetools/internal/domain"
	"github.com/dhindle/commerce-cif-commercetools/internal/mapper"
)

// CommerceClient is the slice of the CommerceTools client this orchestrator
// consumes. Cart reads must expand payment references so the payments' own
// versions are available without extra calls.
type CommerceClient interface {
	GetCart(ctx context.Context, id string) (*commercetools.Cart, error)
	UpdateCart(ctx context.Context, id string, version int64, actions []commercetools.CartUpdateAction) (*commercetools.Cart, error)
	CreatePayment(ctx context.Context, draft commercetools.PaymentDraft) (*commercetools.Payment, error)
	DeletePayment(ctx context.Context, id string, version int64) error
}

// Service implements the cart payment operations.
type Service struct {
	client CommerceClient

	// singlePayment restricts a cart to at most one associated payment.
	singlePayment bool

	// methods is the configured list returned by GetPaymentMethods.
	methods []ccif.PaymentMethod

	logger *slog.Logger
}

// NewService creates the cart payment orchestrator.
func NewService(client CommerceClient, singlePayment bool, methods []ccif.PaymentMethod, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:        client,
		singlePayment: singlePayment,
		methods:       methods,
		logger:        logger,
	}
}

// paymentIdentifier is the id and version of a payment located on a cart,
// together with the cart version observed by the same read. Both versions are
// request-scoped values consumed by the immediately following mutations.
type paymentIdentifier struct {
	id          string
	version     int64
	cartVersion int64
}

// AttachPayment creates a new payment resource from the draft and adds it to
// the cart. Under the single-payment policy the cart must not already carry a
// payment. The payment is created before the cart mutation because the
// mutation references the new payment's id; if the cart mutation then fails,
// the created payment is not rolled back (known non-atomicity gap).
func (s *Service) AttachPayment(ctx context.Context, cartID string, draft ccif.PaymentDraft) (*ccif.Cart, error) {
	const op = "cartpayment.attach"

	id, err := ccif.ParseIdentifier(cartID)
	if err != nil {
		return nil, domain.Invalid(op, err.Error())
	}

	cart, err := s.client.GetCart(ctx, id.CommerceToolsID())
	if err != nil {
		return nil, s.fail(ctx, op, cartID, err)
	}
	if s.singlePayment && cart.PaymentInfo != nil && len(cart.PaymentInfo.Payments) >= 1 {
		return nil, s.fail(ctx, op, cartID, &domain.Error{
			Code:    domain.EINVALID,
			Op:      op,
			Message: domain.ErrPaymentAlreadySet.Message,
			Err:     domain.ErrPaymentAlreadySet,
		})
	}
	version := cart.Version

	payment, err := s.client.CreatePayment(ctx, mapper.PaymentDraft(draft))
	if err != nil {
		return nil, s.fail(ctx, op, cartID, err)
	}

	updated, err := s.client.UpdateCart(ctx, id.CommerceToolsID(), version, []commercetools.CartUpdateAction{
		{Action: "addPayment", Payment: &commercetools.PaymentResource{ID: payment.ID}},
	})
	if err != nil {
		return nil, s.fail(ctx, op, cartID, err)
	}

	return mapper.Cart(updated), nil
}

// RemovePayment removes the sole payment from the cart, then deletes the
// payment resource. The cart is mutated first so it never references a
// deleted payment.
func (s *Service) RemovePayment(ctx context.Context, cartID string) (*ccif.Cart, error) {
	return s.removePayment(ctx, "cartpayment.remove", cartID, "")
}

// RemoveSpecificPayment removes the payment matching paymentID from the cart,
// then deletes the payment resource.
func (s *Service) RemoveSpecificPayment(ctx context.Context, cartID, paymentID string) (*ccif.Cart, error) {
	return s.removePayment(ctx, "cartpayment.removeSpecific", cartID, paymentID)
}

func (s *Service) removePayment(ctx context.Context, op, cartID, paymentID string) (*ccif.Cart, error) {
	id, err := ccif.ParseIdentifier(cartID)
	if err != nil {
		return nil, domain.Invalid(op, err.Error())
	}

	payment, err := s.locatePayment(ctx, op, id.CommerceToolsID(), paymentID)
	if err != nil {
		return nil, s.fail(ctx, op, cartID, err)
	}

	updated, err := s.client.UpdateCart(ctx, id.CommerceToolsID(), payment.cartVersion, []commercetools.CartUpdateAction{
		{Action: "removePayment", Payment: &commercetools.PaymentResource{ID: payment.id, Version: payment.version}},
	})
	if err != nil {
		return nil, s.fail(ctx, op, cartID, err)
	}

	// Capture the cart view before touching the payment resource: the
	// delete response is irrelevant to the cart, and the committed cart
	// mutation is not undone if the delete fails. A failed delete leaves
	// the payment orphaned but unreferenced (known non-atomicity gap).
	view := mapper.Cart(updated)

	if err := s.client.DeletePayment(ctx, payment.id, payment.version); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete payment resource after cart mutation",
			slog.String("op", op),
			slog.String("cart_id", cartID),
			slog.String("payment_id", payment.id),
			slog.Any("error", err),
		)
	}

	return view, nil
}

// GetPayment returns the payment currently set on the cart.
func (s *Service) GetPayment(ctx context.Context, cartID string) (*ccif.Payment, error) {
	const op = "cartpayment.get"

	id, err := ccif.ParseIdentifier(cartID)
	if err != nil {
		return nil, domain.Invalid(op, err.Error())
	}

	cart, err := s.client.GetCart(ctx, id.CommerceToolsID())
	if err != nil {
		return nil, s.fail(ctx, op, cartID, err)
	}
	if cart.PaymentInfo == nil || len(cart.PaymentInfo.Payments) == 0 {
		return nil, wrapPaymentUnset(op)
	}
	obj := cart.PaymentInfo.Payments[0].Obj
	if obj == nil {
		return nil, domain.MissingProperty(op, "payment object")
	}
	return mapper.Payment(obj), nil
}

// GetPaymentMethods returns the payment methods available for the cart. The
// cart read guards against unknown ids; the method list itself is configured,
// since the remote store has no payment method catalog.
func (s *Service) GetPaymentMethods(ctx context.Context, cartID string) ([]ccif.PaymentMethod, error) {
	const op = "cartpayment.methods"

	id, err := ccif.ParseIdentifier(cartID)
	if err != nil {
		return nil, domain.Invalid(op, err.Error())
	}
	if _, err := s.client.GetCart(ctx, id.CommerceToolsID()); err != nil {
		return nil, s.fail(ctx, op, cartID, err)
	}
	return s.methods, nil
}

// locatePayment reads the cart and resolves the payment to operate on: the
// sole payment when paymentID is empty, otherwise the matching one. The cart
// version captured by this read must be used by the following mutation.
func (s *Service) locatePayment(ctx context.Context, op, ctCartID, paymentID string) (paymentIdentifier, error) {
	cart, err := s.client.GetCart(ctx, ctCartID)
	if err != nil {
		return paymentIdentifier{}, err
	}

	info := cart.PaymentInfo
	if info == nil || len(info.Payments) == 0 {
		return paymentIdentifier{}, wrapPaymentUnset(op)
	}

	ref := &info.Payments[0]
	if paymentID != "" {
		ref = nil
		for i := range info.Payments {
			if info.Payments[i].ID == paymentID {
				ref = &info.Payments[i]
				break
			}
		}
		if ref == nil {
			return paymentIdentifier{}, wrapPaymentUnset(op)
		}
	}

	if ref.Obj == nil {
		return paymentIdentifier{}, domain.MissingProperty(op, "payment object")
	}

	return paymentIdentifier{
		id:          ref.ID,
		version:     ref.Obj.Version,
		cartVersion: cart.Version,
	}, nil
}

func wrapPaymentUnset(op string) error {
	return &domain.Error{
		Code:    domain.EINVALID,
		Op:      op,
		Message: domain.ErrPaymentUnset.Message,
		Err:     domain.ErrPaymentUnset,
	}
}

// fail logs a failed operation with its context and returns the error
// unchanged when it already carries a domain code, normalized otherwise.
func (s *Service) fail(ctx context.Context, op, cartID string, err error) error {
	s.logger.ErrorContext(ctx, "cart payment operation failed",
		slog.String("op", op),
		slog.String("cart_id", cartID),
		slog.Any("error", err),
	)

	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.Internal(err, op, "cart payment operation failed")
}
