package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/nlenjibi/storefront/internal/domain/errors"
	"github.com/nlenjibi/storefront/internal/domain/model"
	"github.com/nlenjibi/storefront/internal/query"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, number, user_id, status, payment_status, payment_method, transaction_id,
       subtotal, tax_rate, tax_amount, shipping_cost, discount_amount, coupon_code, coupon_discount,
       total, refund_amount, shipping_address, shipping_method, tracking_number, carrier,
       shipped_at, delivered_at, estimated_delivery_at, cancel_reason, refund_reason, notes,
       cancelled_at, refunded_at, paid_at, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.Number, &o.UserID, &o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.TransactionID,
		&o.Subtotal, &o.TaxRate, &o.TaxAmount, &o.ShippingCost, &o.DiscountAmount, &o.CouponCode, &o.CouponDiscount,
		&o.Total, &o.RefundAmount, &o.ShippingAddress, &o.ShippingMethod, &o.TrackingNumber, &o.Carrier,
		&o.ShippedAt, &o.DeliveredAt, &o.EstimatedDeliveryAt, &o.CancelReason, &o.RefundReason, &o.Notes,
		&o.CancelledAt, &o.RefundedAt, &o.PaidAt, &o.Active, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	saved := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (
                number, user_id, status, payment_status, payment_method,
                subtotal, tax_rate, tax_amount, shipping_cost, discount_amount,
                coupon_code, coupon_discount, total,
                shipping_address, shipping_method, estimated_delivery_at, notes, is_active)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,TRUE)
            RETURNING id, created_at, updated_at`

		err := tx.QueryRow(ctx, insertOrder,
			order.Number, order.UserID, order.Status, order.PaymentStatus, order.PaymentMethod,
			order.Subtotal, order.TaxRate, order.TaxAmount, order.ShippingCost, order.DiscountAmount,
			order.CouponCode, order.CouponDiscount, order.Total,
			order.ShippingAddress, order.ShippingMethod, order.EstimatedDeliveryAt, order.Notes,
		).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return fmt.Errorf("insert order: %w", err)
		}
		saved.Active = true

		items, err := insertItems(ctx, tx, saved.ID, order.Items)
		if err != nil {
			return err
		}
		saved.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID int64, items []model.OrderItem) ([]model.OrderItem, error) {
	const insertItem = `INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, discount, total_price)
                        VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`

	out := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		if err := tx.QueryRow(ctx, insertItem,
			orderID, item.ProductID, item.ProductName, item.Quantity,
			item.UnitPrice, item.Discount, item.TotalPrice,
		).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		out = append(out, item)
	}
	return out, nil
}

func loadItems(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, orderIDs []int64,
) (map[int64][]model.OrderItem, error) {
	const itemsQuery = `SELECT id, order_id, product_id, product_name, quantity, unit_price, discount, total_price
                        FROM order_items WHERE order_id = ANY($1) ORDER BY id`

	rows, err := q.Query(ctx, itemsQuery, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]model.OrderItem)
	for rows.Next() {
		var item model.OrderItem
		var orderID int64
		if err := rows.Scan(&item.ID, &orderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Discount, &item.TotalPrice); err != nil {
			return nil, err
		}
		result[orderID] = append(result[orderID], item)
	}
	return result, rows.Err()
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 AND is_active`, id)
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE number=$1 AND is_active`, number)
}

func (r *orderRepository) getOne(ctx context.Context, sql string, arg any) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := loadItems(ctx, r.storage.pool, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

// Mutate applies fn to the order under a FOR UPDATE lock so that concurrent
// transition calls serialize; the loser sees the committed post-transition
// state and fails its guard.
func (r *orderRepository) Mutate(ctx context.Context, id int64, fn func(*model.Order) error) (*model.Order, error) {
	var mutated *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := scanOrder(tx.QueryRow(ctx,
			`SELECT `+orderColumns+` FROM orders WHERE id=$1 AND is_active FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		items, err := loadItems(ctx, tx, []int64{order.ID})
		if err != nil {
			return err
		}
		order.Items = items[order.ID]

		if err := fn(order); err != nil {
			return err
		}

		const update = `UPDATE orders SET
                status=$2, payment_status=$3, payment_method=$4, transaction_id=$5,
                subtotal=$6, tax_rate=$7, tax_amount=$8, shipping_cost=$9, discount_amount=$10,
                coupon_code=$11, coupon_discount=$12, total=$13, refund_amount=$14,
                shipping_address=$15, shipping_method=$16, tracking_number=$17, carrier=$18,
                shipped_at=$19, delivered_at=$20, estimated_delivery_at=$21,
                cancel_reason=$22, refund_reason=$23, notes=$24,
                cancelled_at=$25, refunded_at=$26, paid_at=$27, updated_at=NOW()
            WHERE id=$1
            RETURNING updated_at`
		if err := tx.QueryRow(ctx, update,
			order.ID, order.Status, order.PaymentStatus, order.PaymentMethod, order.TransactionID,
			order.Subtotal, order.TaxRate, order.TaxAmount, order.ShippingCost, order.DiscountAmount,
			order.CouponCode, order.CouponDiscount, order.Total, order.RefundAmount,
			order.ShippingAddress, order.ShippingMethod, order.TrackingNumber, order.Carrier,
			order.ShippedAt, order.DeliveredAt, order.EstimatedDeliveryAt,
			order.CancelReason, order.RefundReason, order.Notes,
			order.CancelledAt, order.RefundedAt, order.PaidAt,
		).Scan(&order.UpdatedAt); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, order.ID); err != nil {
			return fmt.Errorf("clear order items: %w", err)
		}
		saved, err := insertItems(ctx, tx, order.ID, order.Items)
		if err != nil {
			return err
		}
		order.Items = saved

		mutated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mutated, nil
}

func (r *orderRepository) List(ctx context.Context, cond query.Condition, page query.Page) ([]model.Order, int64, error) {
	page = page.Normalize()
	where, args := cond.SQL(1)

	var total int64
	if err := r.storage.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2)
	rows, err := r.storage.pool.Query(ctx, listQuery, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []model.Order
	var ids []int64
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		items, err := loadItems(ctx, r.storage.pool, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range orders {
			orders[i].Items = items[orders[i].ID]
		}
	}

	return orders, total, nil
}

func (r *orderRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx,
		`UPDATE orders SET is_active=FALSE, updated_at=NOW() WHERE id=$1 AND is_active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Stats(ctx context.Context) (*model.OrderStats, error) {
	stats := &model.OrderStats{ByStatus: make(map[model.OrderStatus]int64)}

	rows, err := r.storage.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM orders WHERE is_active GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status model.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.storage.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM orders WHERE is_active AND payment_status=$1`,
		model.PaymentStatusPaid).Scan(&stats.Revenue)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
