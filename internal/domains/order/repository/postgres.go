package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"hoodlab-backend/internal/domains/order"
	"hoodlab-backend/internal/domains/order/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) OrderRepository {
	return &postgresRepository{pool: pool}
}

// Create chạy toàn bộ checkout trong một transaction:
// Step 1: lock từng dòng tồn kho (FOR UPDATE) theo thứ tự item
// Step 2: re-check stock rồi trừ
// Step 3: insert order + order_items
// Step 4: xóa giỏ của user
// Rollback tự động nếu bất kỳ bước nào fail - không bao giờ trừ kho một nửa.
func (r *postgresRepository) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range o.Items {
		item := &o.Items[i]

		var stock int
		err := tx.QueryRow(ctx,
			`SELECT stock FROM variant_sizes WHERE variant_id = $1 AND size_id = $2 FOR UPDATE`,
			item.VariantID, item.SizeID,
		).Scan(&stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return order.ErrInsufficientStock
			}
			return fmt.Errorf("lock stock row: %w", err)
		}
		if stock < item.Quantity {
			return order.ErrInsufficientStock
		}

		if _, err := tx.Exec(ctx,
			`UPDATE variant_sizes SET stock = stock - $3 WHERE variant_id = $1 AND size_id = $2`,
			item.VariantID, item.SizeID, item.Quantity,
		); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, user_id, total_amount, payment_method,
		                    payment_status, order_status, receiver_name, receiver_phone,
		                    shipping_address, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, now(), now())
		RETURNING id, created_at, updated_at`,
		o.OrderNumber, o.UserID, o.TotalAmount, o.PaymentMethod,
		o.PaymentStatus, o.OrderStatus, o.ReceiverName, o.ReceiverPhone, o.ShippingAddress,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, variant_id, size_id, product_name,
			                         color_name, size_name, unit_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id`,
			item.OrderID, item.VariantID, item.SizeID, item.ProductName,
			item.ColorName, item.SizeName, item.UnitPrice, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return tx.Commit(ctx)
}

const orderColumns = `id, order_number, user_id, total_amount, payment_method,
	payment_status, order_status, receiver_name, receiver_phone,
	shipping_address, version, created_at, updated_at`

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	o, err := r.scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1 AND user_id = $2`, orderColumns)
	o, err := r.scanOrder(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE order_number = $1`, orderColumns)
	o, err := r.scanOrder(r.pool.QueryRow(ctx, query, orderNumber))
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID int64, q model.ListOrdersQuery) (*model.OrderList, error) {
	return r.list(ctx, q, "user_id = $1", []interface{}{userID})
}

func (r *postgresRepository) ListAll(ctx context.Context, q model.ListOrdersQuery) (*model.OrderList, error) {
	return r.list(ctx, q, "1=1", nil)
}

func (r *postgresRepository) list(ctx context.Context, q model.ListOrdersQuery, baseCond string, args []interface{}) (*model.OrderList, error) {
	conds := []string{baseCond}
	idx := len(args) + 1

	if q.PaymentStatus != "" {
		conds = append(conds, fmt.Sprintf("payment_status = $%d", idx))
		args = append(args, q.PaymentStatus)
		idx++
	}
	if q.OrderStatus != "" {
		conds = append(conds, fmt.Sprintf("order_status = $%d", idx))
		args = append(args, q.OrderStatus)
		idx++
	}
	where := strings.Join(conds, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT count(*) FROM orders WHERE %s`, where), args...,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, idx, idx+1)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	items := []model.Order{}
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.OrderList{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// ApplyPaymentTransition - compare-and-set đóng race return-vs-IPN.
// Guard payment_status='Pending' đảm bảo "first confirmation wins":
// hai callback cùng đọc Pending thì chỉ một UPDATE đi qua, bên thua
// nhận applied=false và phải re-read để phân biệt Paid/Cancelled/Failed.
func (r *postgresRepository) ApplyPaymentTransition(ctx context.Context, orderNumber string, t PaymentTransition) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET payment_status = $2,
		    order_status = COALESCE($3, order_status),
		    version = version + 1,
		    updated_at = now()
		WHERE order_number = $1 AND payment_status = 'Pending'`,
		orderNumber, t.PaymentStatus, t.OrderStatus,
	)
	if err != nil {
		return false, fmt.Errorf("apply payment transition: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) SetPaymentMethod(ctx context.Context, id int64, method string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET payment_method = $2, updated_at = now() WHERE id = $1`,
		id, method,
	)
	if err != nil {
		return fmt.Errorf("set payment method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET order_status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// CancelAndRestock hủy đơn và trả lại tồn kho trong một transaction.
// Guard payment_status='Pending' giống ApplyPaymentTransition - một đơn
// vừa được IPN confirm xong thì cancel phải fail.
func (r *postgresRepository) CancelAndRestock(ctx context.Context, o *model.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE orders
		SET payment_status = 'Cancelled', order_status = 'Cancelled',
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND payment_status = 'Pending'`,
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotCancellable
	}

	for _, item := range o.Items {
		if _, err := tx.Exec(ctx,
			`UPDATE variant_sizes SET stock = stock + $3 WHERE variant_id = $1 AND size_id = $2`,
			item.VariantID, item.SizeID, item.Quantity,
		); err != nil {
			return fmt.Errorf("restock item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepository) ListExpiredPending(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM orders
		WHERE payment_status = 'Pending'
		  AND payment_method IN ('VNPAY', 'MOMO')
		  AND created_at < $1
		ORDER BY created_at
		LIMIT $2`, orderColumns)

	rows, err := r.pool.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired pending: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *postgresRepository) GetSalesStats(ctx context.Context, from, to time.Time) (*model.SalesStats, error) {
	stats := &model.SalesStats{From: from, To: to, TotalRevenue: decimal.Zero}
	err := r.pool.QueryRow(ctx, `
		SELECT count(*), COALESCE(sum(total_amount), 0)
		FROM orders
		WHERE payment_status = 'Paid' AND created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&stats.OrderCount, &stats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("sales stats: %w", err)
	}
	return stats, nil
}

func (r *postgresRepository) loadItems(ctx context.Context, o *model.Order) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, variant_id, size_id, product_name, color_name, size_name, unit_price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.VariantID, &item.SizeID,
			&item.ProductName, &item.ColorName, &item.SizeName, &item.UnitPrice, &item.Quantity,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *postgresRepository) scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.TotalAmount, &o.PaymentMethod,
		&o.PaymentStatus, &o.OrderStatus, &o.ReceiverName, &o.ReceiverPhone,
		&o.ShippingAddress, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}
