package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
)

type cartRepository struct {
	storage *Storage
}

func (r *cartRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Cart, error) {
	cart := model.Cart{ID: id}
	err := r.storage.pool.QueryRow(ctx,
		`SELECT user_id, coupon_code, coupon_discount FROM carts WHERE id=$1`, id).
		Scan(&cart.UserID, &cart.CouponCode, &cart.CouponDiscount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.storage.pool.Query(ctx,
		`SELECT product_id, product_name, quantity, unit_price FROM cart_items WHERE cart_id=$1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepository) Clear(ctx context.Context, id uuid.UUID) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, id)
	return err
}
