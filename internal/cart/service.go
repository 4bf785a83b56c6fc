package cart

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"go.uber.org/zap"
)

// Service is the only cart interface the rest of the application touches.
// It applies commands to the in-memory state, saves a snapshot after every
// mutation and hands the cart off to the checkout service.
type Service struct {
	repo     port.SnapshotRepository
	checkout port.CheckoutService
	logger   *zap.Logger
	ownerID  string

	mu      sync.Mutex
	state   domain.Cart
	loading atomic.Bool
}

// New loads the owner's snapshot if one exists. A load failure starts the
// cart empty, it is logged and never surfaced.
func New(ctx context.Context, repo port.SnapshotRepository, checkout port.CheckoutService, ownerID string, logger *zap.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is nil")
	}
	if checkout == nil {
		return nil, fmt.Errorf("checkout is nil")
	}
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		repo:     repo,
		checkout: checkout,
		logger:   logger,
		ownerID:  ownerID,
	}

	snapshot, found, err := repo.Load(ctx, ownerID)
	if err != nil {
		logger.Warn("loading cart snapshot failed, starting empty", zap.Error(err))
	} else if found {
		s.state = snapshot
	}

	return s, nil
}

func (s *Service) AddItem(ctx context.Context, item domain.LineItem) {
	s.apply(ctx, domain.AddItem{Item: item})
}

func (s *Service) RemoveItem(ctx context.Context, id string) {
	s.apply(ctx, domain.RemoveItem{ID: id})
}

func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.apply(ctx, domain.SetQuantity{ID: id, Quantity: quantity})
}

func (s *Service) ClearCart(ctx context.Context) {
	s.apply(ctx, domain.Clear{})
}

// Cart returns a copy of the current state.
func (s *Service) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// Loading reports whether a checkout call is in flight.
func (s *Service) Loading() bool {
	return s.loading.Load()
}

// Checkout builds (variantID, quantity) lines from the current items and
// asks the checkout service for a redirect URL. An empty cart fails with
// domain.ErrEmptyCart before any network call. The lock is not held
// during the call: mutations keep applying while checkout is in flight,
// the request was built from the snapshot taken here.
func (s *Service) Checkout(ctx context.Context) (string, error) {
	s.mu.Lock()
	lines := make([]port.CheckoutLine, 0, len(s.state.Items))
	for _, item := range s.state.Items {
		lines = append(lines, port.CheckoutLine{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}
	s.mu.Unlock()

	if len(lines) == 0 {
		return "", domain.ErrEmptyCart
	}

	s.loading.Store(true)
	defer s.loading.Store(false)

	url, err := s.checkout.CreateCheckout(ctx, lines)
	if err != nil {
		return "", fmt.Errorf("checkout.CreateCheckout: %w", err)
	}

	return url, nil
}

// apply runs the reducer and saves the new snapshot. Save failures are
// logged, never surfaced: durability is a convenience, not a correctness
// requirement.
func (s *Service) apply(ctx context.Context, cmd domain.Command) {
	s.mu.Lock()
	s.state = domain.Apply(s.state, cmd)
	snapshot := s.state
	s.mu.Unlock()

	if err := s.repo.Save(ctx, s.ownerID, snapshot); err != nil {
		s.logger.Warn("saving cart snapshot failed", zap.Error(err))
	}
}
