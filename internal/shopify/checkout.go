package shopify

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront-cart/internal/port"
)

const cartCreateMutation = `
mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {
      id
      checkoutUrl
    }
    userErrors {
      field
      message
    }
  }
}`

// CreateCheckout creates a Shopify cart from (variantID, quantity) pairs
// and returns its checkout URL. Validation failures come back as a
// RejectedError, as does a success payload with no redirect URL.
func (c *Client) CreateCheckout(ctx context.Context, lines []port.CheckoutLine) (string, error) {
	lineInputs := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		lineInputs = append(lineInputs, map[string]any{
			"merchandiseId": line.VariantID,
			"quantity":      line.Quantity,
		})
	}

	variables := map[string]any{
		"input": map[string]any{"lines": lineInputs},
	}

	var out struct {
		CartCreate struct {
			Cart *struct {
				ID          string `json:"id"`
				CheckoutURL string `json:"checkoutUrl"`
			} `json:"cart"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"cartCreate"`
	}

	if err := c.do(ctx, cartCreateMutation, variables, &out); err != nil {
		return "", fmt.Errorf("do: %w", err)
	}

	if len(out.CartCreate.UserErrors) > 0 {
		return "", &RejectedError{Errors: out.CartCreate.UserErrors}
	}

	if out.CartCreate.Cart == nil || out.CartCreate.Cart.CheckoutURL == "" {
		return "", &RejectedError{Errors: []UserError{
			{Message: "checkout response has no redirect URL"},
		}}
	}

	return out.CartCreate.Cart.CheckoutURL, nil
}
