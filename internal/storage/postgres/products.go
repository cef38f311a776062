package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
)

type productRepository struct {
	storage *Storage
}

const productColumns = `id, name, description, price, category_id, stock, reserved, is_active, created_at, updated_at`

func scanProduct(row rowScanner) (*model.Product, error) {
	var p model.Product
	var categoryID *int64
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &categoryID,
		&p.Stock, &p.Reserved, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := scanProduct(r.storage.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1 AND is_active`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Product, int64, error) {
	page = page.Normalize()
	where, args := cond.SQL(1)

	var total int64
	if err := r.storage.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)+1, len(args)+2)
	rows, err := r.storage.pool.Query(ctx, listQuery, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

// Reserve holds stock with a single conditional update; the availability
// check and the increment are one statement, so concurrent reservations
// can never jointly oversell.
func (r *productRepository) Reserve(ctx context.Context, productID int64, qty int) error {
	if qty <= 0 {
		return domainErrors.ErrInvalidArgument
	}

	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE products SET reserved = reserved + $2, updated_at = NOW()
         WHERE id=$1 AND is_active AND stock - reserved >= $2`,
		productID, qty)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.stockFailure(ctx, productID, qty)
	}
	return nil
}

// Deduct permanently removes stock after an order is persisted and releases
// up to qty units of the reservation that covered it.
func (r *productRepository) Deduct(ctx context.Context, productID int64, qty int) error {
	if qty <= 0 {
		return domainErrors.ErrInvalidArgument
	}

	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE products SET stock = stock - $2, reserved = GREATEST(reserved - $2, 0), updated_at = NOW()
         WHERE id=$1 AND stock >= $2`,
		productID, qty)
	if err != nil {
		return fmt.Errorf("deduct stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.stockFailure(ctx, productID, qty)
	}
	return nil
}

func (r *productRepository) Release(ctx context.Context, productID int64, qty int) error {
	if qty <= 0 {
		return domainErrors.ErrInvalidArgument
	}

	_, err := r.storage.pool.Exec(ctx,
		`UPDATE products SET reserved = GREATEST(reserved - $2, 0), updated_at = NOW() WHERE id=$1`,
		productID, qty)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	return nil
}

func (r *productRepository) stockFailure(ctx context.Context, productID int64, qty int) error {
	var stock, reserved int
	err := r.storage.pool.QueryRow(ctx,
		`SELECT stock, reserved FROM products WHERE id=$1 AND is_active`, productID).
		Scan(&stock, &reserved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return &domainErrors.InsufficientStockError{
		ProductID: productID,
		Requested: qty,
		Available: stock - reserved,
	}
}
