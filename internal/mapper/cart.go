// Package mapper translates CommerceTools JSON shapes into the CCIF
// canonical model. Mapping is pure data transformation: no state beyond an
// injected locale picker, no I/O, and no defaults for structurally required
// fields; those fail the whole mapping instead.
package mapper

import (
	"github.com/dhindle/commerce-cif-commercetools/internal/ccif"
	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
)

// Cart maps a CommerceTools cart to the CCIF cart view. The CCIF id carries
// the observed remote version so callers can hand it back on mutations.
func Cart(ct *commercetools.Cart) *ccif.Cart {
	cart := &ccif.Cart{
		ID:               ccif.FormatIdentifier(ct.ID, ct.Version),
		CreatedDate:      ct.CreatedAt,
		LastModifiedDate: ct.LastModifiedAt,
	}
	if ct.TotalPrice != nil {
		cart.Currency = ct.TotalPrice.CurrencyCode
	}
	if ct.PaymentInfo != nil && len(ct.PaymentInfo.Payments) > 0 {
		if obj := ct.PaymentInfo.Payments[0].Obj; obj != nil {
			cart.Payment = Payment(obj)
		}
	}
	return cart
}

// Payment maps a CommerceTools payment to the CCIF payment view.
func Payment(ct *commercetools.Payment) *ccif.Payment {
	p := &ccif.Payment{
		ID: ct.ID,
		Amount: ccif.MoneyValue{
			Amount:   ct.AmountPlanned.CentAmount,
			Currency: ct.AmountPlanned.CurrencyCode,
		},
		Token:            ct.InterfaceID,
		CreatedDate:      ct.CreatedAt,
		LastModifiedDate: ct.LastModifiedAt,
	}
	if ct.PaymentMethodInfo != nil {
		p.Method = ct.PaymentMethodInfo.Method
	}
	if ct.PaymentStatus != nil {
		p.StatusCode = ct.PaymentStatus.InterfaceCode
	}
	return p
}

// PaymentDraft maps a CCIF payment draft to the CommerceTools create payload.
func PaymentDraft(d ccif.PaymentDraft) commercetools.PaymentDraft {
	return commercetools.PaymentDraft{
		AmountPlanned: commercetools.Money{
			CentAmount:   d.Amount.Amount,
			CurrencyCode: d.Amount.Currency,
		},
		PaymentMethodInfo: &commercetools.PaymentMethodInfo{
			Method: d.Method,
		},
		InterfaceID: d.Token,
	}
}
