package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

type snapshotRepository struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) port.SnapshotRepository {
	return &snapshotRepository{pool: pool}
}

func (r *snapshotRepository) Load(ctx context.Context, ownerID string) (domain.Cart, bool, error) {
	if ownerID == "" {
		return domain.Cart{}, false, fmt.Errorf("ownerID is empty")
	}

	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT snapshot FROM cart_snapshots WHERE owner_id = $1`, ownerID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Cart{}, false, nil
	}
	if err != nil {
		return domain.Cart{}, false, fmt.Errorf("pool.QueryRow: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		// unreadable snapshot degrades to an empty cart
		return domain.Cart{}, false, nil
	}

	return cart, true, nil
}

func (r *snapshotRepository) Save(ctx context.Context, ownerID string, cart domain.Cart) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO cart_snapshots (owner_id, snapshot)
		 VALUES ($1, $2)
		 ON CONFLICT (owner_id)
		 DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()`,
		ownerID, raw)
	if err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}
