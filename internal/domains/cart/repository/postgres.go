package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hoodlab-backend/internal/domains/cart"
	"hoodlab-backend/internal/domains/cart/model"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	GetStock(ctx context.Context, variantID, sizeID int64) (int, error)
	Upsert(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) CartRepository {
	return &postgresRepository{pool: pool}
}

// ListByUser load giỏ kèm thông tin hiển thị và stock hiện tại
func (r *postgresRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ci.id, ci.user_id, ci.variant_id, ci.size_id, ci.quantity,
		       ci.created_at, ci.updated_at,
		       p.id, p.name, co.name, s.name, p.price, vs.stock
		FROM cart_items ci
		JOIN product_variants v ON v.id = ci.variant_id
		JOIN products p ON p.id = v.product_id
		JOIN colors co ON co.id = v.color_id
		JOIN sizes s ON s.id = ci.size_id
		JOIN variant_sizes vs ON vs.variant_id = ci.variant_id AND vs.size_id = ci.size_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := []model.CartItem{}
	for rows.Next() {
		var i model.CartItem
		if err := rows.Scan(
			&i.ID, &i.UserID, &i.VariantID, &i.SizeID, &i.Quantity,
			&i.CreatedAt, &i.UpdatedAt,
			&i.ProductID, &i.ProductName, &i.ColorName, &i.SizeName, &i.UnitPrice, &i.Stock,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *postgresRepository) GetStock(ctx context.Context, variantID, sizeID int64) (int, error) {
	var stock int
	err := r.pool.QueryRow(ctx,
		`SELECT stock FROM variant_sizes WHERE variant_id = $1 AND size_id = $2`,
		variantID, sizeID,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, cart.ErrVariantNotFound
		}
		return 0, fmt.Errorf("get stock: %w", err)
	}
	return stock, nil
}

// Upsert cộng dồn quantity nếu (user, variant, size) đã có trong giỏ
func (r *postgresRepository) Upsert(ctx context.Context, item *model.CartItem) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO cart_items (user_id, variant_id, size_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (user_id, variant_id, size_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING id, quantity, created_at, updated_at`,
		item.UserID, item.VariantID, item.SizeID, item.Quantity,
	).Scan(&item.ID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now() WHERE id = $2 AND user_id = $1`,
		userID, itemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) Remove(ctx context.Context, userID, itemID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $2 AND user_id = $1`,
		userID, itemID,
	)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
