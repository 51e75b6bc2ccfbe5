package commercetools

import (
	"context"
	"net/url"
	"strconv"
)

// CreatePayment creates a standalone payment resource. The caller attaches
// it to a cart in a separate, versioned cart update.
func (c *Client) CreatePayment(ctx context.Context, draft PaymentDraft) (*Payment, error) {
	var payment Payment
	if err := c.post(ctx, "commercetools.createPayment", "/payments", nil, draft, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// DeletePayment deletes a payment resource at the given version. Called only
// after the owning cart's removePayment mutation has been accepted, so a cart
// never references a deleted payment.
func (c *Client) DeletePayment(ctx context.Context, id string, version int64) error {
	query := url.Values{}
	query.Set("version", strconv.FormatInt(version, 10))

	return c.delete(ctx, "commercetools.deletePayment", "/payments/"+url.PathEscape(id), query, nil)
}
