package port

import (
	"context"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

// SnapshotRepository persists one cart snapshot per owner. A snapshot
// that is absent or cannot be decoded is reported as found=false, never
// as an error: the cart degrades to empty instead of failing.
type SnapshotRepository interface {
	Load(ctx context.Context, ownerID string) (domain.Cart, bool, error)
	Save(ctx context.Context, ownerID string, cart domain.Cart) error
}

// CheckoutLine is the only data sent to the commerce service. Titles,
// images and snapshotted prices stay local, the service owns pricing at
// checkout time.
type CheckoutLine struct {
	VariantID string
	Quantity  int
}

type CheckoutService interface {
	CreateCheckout(ctx context.Context, lines []CheckoutLine) (string, error)
}
