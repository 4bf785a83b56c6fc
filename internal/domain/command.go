package domain

// Command is one of the four cart mutations.
type Command interface {
	isCommand()
}

type AddItem struct {
	Item LineItem
}

type RemoveItem struct {
	ID string
}

type SetQuantity struct {
	ID       string
	Quantity int
}

type Clear struct{}

func (AddItem) isCommand()     {}
func (RemoveItem) isCommand()  {}
func (SetQuantity) isCommand() {}
func (Clear) isCommand()       {}

// Apply reduces a cart with a single command. It is pure: the input cart
// is left untouched and the result is a fresh value with totals refolded
// from the surviving items. Apply is total over its inputs, commands that
// would produce a non-positive quantity drop the line instead.
func Apply(cart Cart, cmd Command) Cart {
	switch c := cmd.(type) {
	case AddItem:
		return refold(mergeItem(cart.Items, c.Item))
	case RemoveItem:
		return refold(deleteItem(cart.Items, c.ID))
	case SetQuantity:
		if c.Quantity <= 0 {
			return refold(deleteItem(cart.Items, c.ID))
		}
		return refold(setQuantity(cart.Items, c.ID, c.Quantity))
	case Clear:
		return Cart{}
	default:
		return cart.Clone()
	}
}

// mergeItem merges by id: the incoming item's fields win, quantities
// accumulate, and the line keeps its first-seen position. Unknown ids
// append.
func mergeItem(items []LineItem, item LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)

	for i := range out {
		if out[i].ID == item.ID {
			quantity := out[i].Quantity + item.Quantity
			out[i] = item
			out[i].Quantity = quantity
			return out
		}
	}

	return append(out, item)
}

func deleteItem(items []LineItem, id string) []LineItem {
	var out []LineItem

	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}

	return out
}

func setQuantity(items []LineItem, id string, quantity int) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)

	for i := range out {
		if out[i].ID == id {
			out[i].Quantity = quantity
		}
	}

	return out
}

// refold rebuilds the cart from its items: lines with non-positive
// quantity are dropped and both totals are recomputed with a full fold.
// The total carries the currency of the first line.
func refold(items []LineItem) Cart {
	var kept []LineItem
	for _, item := range items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}

	cart := Cart{Items: kept}
	for _, item := range kept {
		cart.TotalItems += item.Quantity
		cart.TotalPrice.Amount = cart.TotalPrice.Amount.Add(item.Price.Mul(item.Quantity).Amount)
	}

	if len(kept) > 0 {
		cart.TotalPrice.Currency = kept[0].Price.Currency
	}

	return cart
}
