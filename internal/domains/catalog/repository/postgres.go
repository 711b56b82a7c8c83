package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hoodlab-backend/internal/domains/catalog"
	"hoodlab-backend/internal/domains/catalog/model"
)

// CatalogRepository - CRUD cho các bảng lookup (brands, categories, colors, sizes)
type CatalogRepository interface {
	ListBrands(ctx context.Context) ([]model.Brand, error)
	CreateBrand(ctx context.Context, b *model.Brand) error
	DeleteBrand(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListColors(ctx context.Context) ([]model.Color, error)
	CreateColor(ctx context.Context, c *model.Color) error
	DeleteColor(ctx context.Context, id int64) error

	ListSizes(ctx context.Context) ([]model.Size, error)
	CreateSize(ctx context.Context, s *model.Size) error
	DeleteSize(ctx context.Context, id int64) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) CatalogRepository {
	return &postgresRepository{pool: pool}
}

// ========================================
// BRANDS
// ========================================

func (r *postgresRepository) ListBrands(ctx context.Context) ([]model.Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []model.Brand
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *postgresRepository) CreateBrand(ctx context.Context, b *model.Brand) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO brands (name, created_at) VALUES ($1, now()) RETURNING id, created_at`,
		b.Name,
	).Scan(&b.ID, &b.CreatedAt)
	return mapInsertErr(err, "insert brand")
}

func (r *postgresRepository) DeleteBrand(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM brands WHERE id = $1`, "delete brand", id)
}

// ========================================
// CATEGORIES
// ========================================

func (r *postgresRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepository) CreateCategory(ctx context.Context, c *model.Category) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, created_at) VALUES ($1, now()) RETURNING id, created_at`,
		c.Name,
	).Scan(&c.ID, &c.CreatedAt)
	return mapInsertErr(err, "insert category")
}

func (r *postgresRepository) DeleteCategory(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM categories WHERE id = $1`, "delete category", id)
}

// ========================================
// COLORS / SIZES
// ========================================

func (r *postgresRepository) ListColors(ctx context.Context) ([]model.Color, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, hex_code FROM colors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	defer rows.Close()

	var colors []model.Color
	for rows.Next() {
		var c model.Color
		if err := rows.Scan(&c.ID, &c.Name, &c.HexCode); err != nil {
			return nil, fmt.Errorf("scan color: %w", err)
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

func (r *postgresRepository) CreateColor(ctx context.Context, c *model.Color) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO colors (name, hex_code) VALUES ($1, $2) RETURNING id`,
		c.Name, c.HexCode,
	).Scan(&c.ID)
	return mapInsertErr(err, "insert color")
}

func (r *postgresRepository) ListSizes(ctx context.Context) ([]model.Size, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, sort_order FROM sizes ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()

	var sizes []model.Size
	for rows.Next() {
		var s model.Size
		if err := rows.Scan(&s.ID, &s.Name, &s.SortOrder); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}

func (r *postgresRepository) DeleteColor(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM colors WHERE id = $1`, "delete color", id)
}

func (r *postgresRepository) CreateSize(ctx context.Context, s *model.Size) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sizes (name, sort_order) VALUES ($1, $2) RETURNING id`,
		s.Name, s.SortOrder,
	).Scan(&s.ID)
	return mapInsertErr(err, "insert size")
}

func (r *postgresRepository) DeleteSize(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM sizes WHERE id = $1`, "delete size", id)
}

// deleteRow xóa một lookup row; 23503 nghĩa là row đang được product
// variant tham chiếu và không được phép xóa
func (r *postgresRepository) deleteRow(ctx context.Context, query, op string, id int64) error {
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return catalog.ErrInUse
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func mapInsertErr(err error, op string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return catalog.ErrNameTaken
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
