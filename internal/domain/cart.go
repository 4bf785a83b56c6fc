package domain

// LineItemID builds the stable cart identity of a product/variant pair.
// Two adds of the same pair always land on the same line item, while
// different variants of one product stay on separate lines.
func LineItemID(productID, variantID string) string {
	return productID + "-" + variantID
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantInfo is display metadata for the chosen variant. Identity lives
// in LineItem.ID, not here.
type VariantInfo struct {
	Title           string           `json:"title"`
	SelectedOptions []SelectedOption `json:"selectedOptions,omitempty"`
}

type LineItem struct {
	ID        string      `json:"id"`
	ProductID string      `json:"productId"`
	VariantID string      `json:"variantId"`
	Title     string      `json:"title"`
	Image     string      `json:"image,omitempty"`
	Price     Money       `json:"price"`
	Quantity  int         `json:"quantity"`
	Variant   VariantInfo `json:"variant"`
}

// Cart holds the line items plus totals derived from them. Totals are
// refolded from the items on every mutation, never adjusted in place.
type Cart struct {
	Items      []LineItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice Money      `json:"totalPrice"`
}

func (c Cart) Clone() Cart {
	out := c

	if c.Items != nil {
		out.Items = make([]LineItem, len(c.Items))
		copy(out.Items, c.Items)

		for i, item := range out.Items {
			if item.Variant.SelectedOptions != nil {
				options := make([]SelectedOption, len(item.Variant.SelectedOptions))
				copy(options, item.Variant.SelectedOptions)
				out.Items[i].Variant.SelectedOptions = options
			}
		}
	}

	return out
}
