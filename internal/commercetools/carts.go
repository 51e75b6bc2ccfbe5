package commercetools

import (
	"context"
	"net/url"
)

// paymentExpansion makes cart reads return the full payment objects behind
// the cart's payment references, so the payments' own versions ride along
// with a single read.
const paymentExpansion = "paymentInfo.payments[*]"

// GetCart fetches a cart by its CommerceTools id.
func (c *Client) GetCart(ctx context.Context, id string) (*Cart, error) {
	query := url.Values{}
	query.Set("expand", paymentExpansion)

	var cart Cart
	if err := c.get(ctx, "commercetools.getCart", "/carts/"+url.PathEscape(id), query, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCart issues a versioned update against a cart. The version must be
// the one most recently observed from a read of the same cart; the remote
// store rejects the mutation when it is stale.
func (c *Client) UpdateCart(ctx context.Context, id string, version int64, actions []CartUpdateAction) (*Cart, error) {
	query := url.Values{}
	query.Set("expand", paymentExpansion)

	payload := cartUpdate{Version: version, Actions: actions}

	var cart Cart
	if err := c.post(ctx, "commercetools.updateCart", "/carts/"+url.PathEscape(id), query, payload, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
