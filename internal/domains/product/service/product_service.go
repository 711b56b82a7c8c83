package service

import (
	"context"
	"fmt"
	"time"

	"hoodlab-backend/internal/domains/product/model"
	"hoodlab-backend/internal/domains/product/repository"
	"hoodlab-backend/pkg/cache"
	"hoodlab-backend/pkg/logger"
)

const productCacheTTL = 10 * time.Minute

type ProductService interface {
	List(ctx context.Context, q model.ListProductsQuery) (*model.ProductList, error)
	GetDetail(ctx context.Context, id int64, includeInactive bool) (*model.Product, error)
	Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, id int64, req model.UpdateProductRequest) (*model.Product, error)
	AddVariant(ctx context.Context, productID int64, req model.CreateVariantRequest) (*model.Variant, error)
	SetStock(ctx context.Context, productID, variantID int64, req model.SetStockRequest) error
}

type productService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewProductService(repo repository.ProductRepository, c cache.Cache) ProductService {
	return &productService{repo: repo, cache: c}
}

func (s *productService) List(ctx context.Context, q model.ListProductsQuery) (*model.ProductList, error) {
	q.Normalize()
	return s.repo.List(ctx, q)
}

// GetDetail - cache-aside với key product:<id>.
// Chỉ cache bản storefront (active); admin view đọc thẳng DB.
func (s *productService) GetDetail(ctx context.Context, id int64, includeInactive bool) (*model.Product, error) {
	if includeInactive {
		return s.repo.GetByID(ctx, id, true)
	}

	key := productCacheKey(id)
	var cached model.Product
	if s.cache != nil {
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	p, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, p, productCacheTTL); err != nil {
			logger.Warn("product cache set failed", map[string]interface{}{"product_id": id, "error": err.Error()})
		}
	}
	return p, nil
}

func (s *productService) Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		BrandID:     req.BrandID,
		CategoryID:  req.CategoryID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Update(ctx context.Context, id int64, req model.UpdateProductRequest) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.BrandID = req.BrandID
	p.CategoryID = req.CategoryID
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return p, nil
}

func (s *productService) AddVariant(ctx context.Context, productID int64, req model.CreateVariantRequest) (*model.Variant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Đảm bảo product tồn tại trước khi thêm variant
	if _, err := s.repo.GetByID(ctx, productID, true); err != nil {
		return nil, err
	}

	v := &model.Variant{
		ProductID: productID,
		ColorID:   req.ColorID,
		ImageURL:  req.ImageURL,
	}
	if err := s.repo.AddVariant(ctx, v); err != nil {
		return nil, err
	}

	s.invalidate(ctx, productID)
	return v, nil
}

func (s *productService) SetStock(ctx context.Context, productID, variantID int64, req model.SetStockRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.repo.SetStock(ctx, variantID, req.SizeID, req.Stock); err != nil {
		return err
	}

	s.invalidate(ctx, productID)
	return nil
}

func (s *productService) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, productCacheKey(id))
	}
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}
