package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/nlenjibi/storefront/internal/domain/model"
)

// CartRepository supplies carts to the checkout factory. Line prices are
// already computed by the cart layer; checkout never recomputes them.
type CartRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Cart, error)
	// Clear empties the cart after a successful checkout.
	Clear(ctx context.Context, id uuid.UUID) error
}
