package postgres

import (
	"context"
	"fmt"

	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
)

type categoryRepository struct {
	storage *Storage
}

func (r *categoryRepository) List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Category, int64, error) {
	page = page.Normalize()
	where, args := cond.SQL(1)

	var total int64
	if err := r.storage.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM categories WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`SELECT id, name, parent_id, is_active, created_at
        FROM categories WHERE %s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := r.storage.pool.Query(ctx, listQuery, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.Active, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

type reviewRepository struct {
	storage *Storage
}

func (r *reviewRepository) List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Review, int64, error) {
	page = page.Normalize()
	where, args := cond.SQL(1)

	var total int64
	if err := r.storage.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`SELECT id, product_id, user_id, rating, comment, approved, is_active, created_at
        FROM reviews WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := r.storage.pool.Query(ctx, listQuery, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment,
			&rv.Approved, &rv.Active, &rv.CreatedAt); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}
