package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hoodlab-backend/internal/domains/product"
	"hoodlab-backend/internal/domains/product/model"
)

type ProductRepository interface {
	List(ctx context.Context, q model.ListProductsQuery) (*model.ProductList, error)
	GetByID(ctx context.Context, id int64, includeInactive bool) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error

	AddVariant(ctx context.Context, v *model.Variant) error
	SetStock(ctx context.Context, variantID, sizeID int64, stock int) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ProductRepository {
	return &postgresRepository{pool: pool}
}

// List trả về trang sản phẩm kèm tổng số dòng cho pagination meta.
// Search dùng ILIKE trên name - đủ cho catalog cỡ shop quần áo.
func (r *postgresRepository) List(ctx context.Context, q model.ListProductsQuery) (*model.ProductList, error) {
	conds := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	if !q.IncludeInactive {
		conds = append(conds, "p.is_active = true")
	}
	if q.Search != "" {
		conds = append(conds, fmt.Sprintf("p.name ILIKE $%d", idx))
		args = append(args, "%"+q.Search+"%")
		idx++
	}
	if q.BrandID > 0 {
		conds = append(conds, fmt.Sprintf("p.brand_id = $%d", idx))
		args = append(args, q.BrandID)
		idx++
	}
	if q.CategoryID > 0 {
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", idx))
		args = append(args, q.CategoryID)
		idx++
	}

	where := strings.Join(conds, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT count(*) FROM products p WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.price, p.brand_id, p.category_id,
		       p.is_active, p.created_at, p.updated_at, b.name, c.name
		FROM products p
		JOIN brands b ON b.id = p.brand_id
		JOIN categories c ON c.id = p.category_id
		WHERE %s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d`, where, idx, idx+1)
	args = append(args, q.Limit, (q.Page-1)*q.Limit)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.BrandID, &p.CategoryID,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.BrandName, &p.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.ProductList{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// GetByID load product kèm variants và stock từng size (3 queries, không N+1)
func (r *postgresRepository) GetByID(ctx context.Context, id int64, includeInactive bool) (*model.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.brand_id, p.category_id,
		       p.is_active, p.created_at, p.updated_at, b.name, c.name
		FROM products p
		JOIN brands b ON b.id = p.brand_id
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`
	if !includeInactive {
		query += " AND p.is_active = true"
	}

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.BrandID, &p.CategoryID,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.BrandName, &p.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.product_id, v.color_id, co.name, v.image_url
		FROM product_variants v
		JOIN colors co ON co.id = v.color_id
		WHERE v.product_id = $1
		ORDER BY v.id`, id)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	variantIdx := map[int64]int{}
	for rows.Next() {
		var v model.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.ColorID, &v.ColorName, &v.ImageURL); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variantIdx[v.ID] = len(p.Variants)
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(p.Variants) > 0 {
		sizeRows, err := r.pool.Query(ctx, `
			SELECT vs.id, vs.variant_id, vs.size_id, s.name, vs.stock
			FROM variant_sizes vs
			JOIN sizes s ON s.id = vs.size_id
			JOIN product_variants v ON v.id = vs.variant_id
			WHERE v.product_id = $1
			ORDER BY s.sort_order`, id)
		if err != nil {
			return nil, fmt.Errorf("list variant sizes: %w", err)
		}
		defer sizeRows.Close()

		for sizeRows.Next() {
			var vs model.VariantSize
			if err := sizeRows.Scan(&vs.ID, &vs.VariantID, &vs.SizeID, &vs.SizeName, &vs.Stock); err != nil {
				return nil, fmt.Errorf("scan variant size: %w", err)
			}
			if i, ok := variantIdx[vs.VariantID]; ok {
				p.Variants[i].Sizes = append(p.Variants[i].Sizes, vs)
			}
		}
		if err := sizeRows.Err(); err != nil {
			return nil, err
		}
	}

	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Product) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, brand_id, category_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, now(), now())
		RETURNING id, is_active, created_at, updated_at`,
		p.Name, p.Description, p.Price, p.BrandID, p.CategoryID,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return mapWriteErr(err, "insert product")
}

func (r *postgresRepository) Update(ctx context.Context, p *model.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, brand_id = $5, category_id = $6,
		    is_active = $7, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.BrandID, p.CategoryID, p.IsActive,
	)
	if err != nil {
		return mapWriteErr(err, "update product")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *postgresRepository) AddVariant(ctx context.Context, v *model.Variant) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO product_variants (product_id, color_id, image_url)
		VALUES ($1, $2, $3)
		RETURNING id`,
		v.ProductID, v.ColorID, v.ImageURL,
	).Scan(&v.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return product.ErrDuplicateColor
			case "23503":
				return product.ErrInvalidRef
			}
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// SetStock upsert tồn kho cho (variant, size)
func (r *postgresRepository) SetStock(ctx context.Context, variantID, sizeID int64, stock int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO variant_sizes (variant_id, size_id, stock)
		VALUES ($1, $2, $3)
		ON CONFLICT (variant_id, size_id) DO UPDATE SET stock = EXCLUDED.stock`,
		variantID, sizeID, stock,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return product.ErrInvalidRef
		}
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}

func mapWriteErr(err error, op string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return product.ErrInvalidRef
	}
	return fmt.Errorf("%s: %w", op, err)
}
