package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

type fileRepository struct {
	path string
}

// NewFile stores a single snapshot in one JSON file. The path is the
// namespace: the ownerID is validated but does not select the file, the
// same way a browser's local storage holds one cart under one fixed key.
func NewFile(path string) (port.SnapshotRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}

	return &fileRepository{path: path}, nil
}

func (r *fileRepository) Load(_ context.Context, ownerID string) (domain.Cart, bool, error) {
	if ownerID == "" {
		return domain.Cart{}, false, fmt.Errorf("ownerID is empty")
	}

	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return domain.Cart{}, false, nil
	}
	if err != nil {
		return domain.Cart{}, false, fmt.Errorf("os.ReadFile: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		// unreadable snapshot degrades to an empty cart
		return domain.Cart{}, false, nil
	}

	return cart, true, nil
}

func (r *fileRepository) Save(_ context.Context, ownerID string, cart domain.Cart) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	// write-then-rename so a crash mid-write cannot corrupt the snapshot
	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".cart-*.json")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
