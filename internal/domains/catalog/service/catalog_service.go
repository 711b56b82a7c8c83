package service

import (
	"context"
	"time"

	"hoodlab-backend/internal/domains/catalog/model"
	"hoodlab-backend/internal/domains/catalog/repository"
	"hoodlab-backend/pkg/cache"
)

const lookupCacheTTL = 10 * time.Minute

// CatalogService - lookup data cho storefront và admin
type CatalogService interface {
	ListBrands(ctx context.Context) ([]model.Brand, error)
	CreateBrand(ctx context.Context, req model.CreateBrandRequest) (*model.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListColors(ctx context.Context) ([]model.Color, error)
	CreateColor(ctx context.Context, req model.CreateColorRequest) (*model.Color, error)
	DeleteColor(ctx context.Context, id int64) error

	ListSizes(ctx context.Context) ([]model.Size, error)
	CreateSize(ctx context.Context, req model.CreateSizeRequest) (*model.Size, error)
	DeleteSize(ctx context.Context, id int64) error
}

type catalogService struct {
	repo  repository.CatalogRepository
	cache cache.Cache
}

func NewCatalogService(repo repository.CatalogRepository, c cache.Cache) CatalogService {
	return &catalogService{repo: repo, cache: c}
}

// listCached đọc từ Redis trước, miss thì query DB rồi set lại.
// Cache fail không chặn request - lookup data đọc thẳng DB vẫn rẻ.
func listCached[T any](ctx context.Context, s *catalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	if s.cache != nil {
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, items, lookupCacheTTL)
	}
	return items, nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]model.Brand, error) {
	return listCached(ctx, s, "catalog:brands", s.repo.ListBrands)
}

func (s *catalogService) CreateBrand(ctx context.Context, req model.CreateBrandRequest) (*model.Brand, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	b := &model.Brand{Name: req.Name}
	if err := s.repo.CreateBrand(ctx, b); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "catalog:brands")
	return b, nil
}

func (s *catalogService) DeleteBrand(ctx context.Context, id int64) error {
	if err := s.repo.DeleteBrand(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "catalog:brands")
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return listCached(ctx, s, "catalog:categories", s.repo.ListCategories)
}

func (s *catalogService) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := &model.Category{Name: req.Name}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "catalog:categories")
	return c, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "catalog:categories")
	return nil
}

func (s *catalogService) ListColors(ctx context.Context) ([]model.Color, error) {
	return listCached(ctx, s, "catalog:colors", s.repo.ListColors)
}

func (s *catalogService) CreateColor(ctx context.Context, req model.CreateColorRequest) (*model.Color, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c := &model.Color{Name: req.Name, HexCode: req.HexCode}
	if err := s.repo.CreateColor(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "catalog:colors")
	return c, nil
}

func (s *catalogService) DeleteColor(ctx context.Context, id int64) error {
	if err := s.repo.DeleteColor(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "catalog:colors")
	return nil
}

func (s *catalogService) ListSizes(ctx context.Context) ([]model.Size, error) {
	return listCached(ctx, s, "catalog:sizes", s.repo.ListSizes)
}

func (s *catalogService) CreateSize(ctx context.Context, req model.CreateSizeRequest) (*model.Size, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sz := &model.Size{Name: req.Name, SortOrder: req.SortOrder}
	if err := s.repo.CreateSize(ctx, sz); err != nil {
		return nil, err
	}
	s.invalidate(ctx, "catalog:sizes")
	return sz, nil
}

func (s *catalogService) DeleteSize(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSize(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "catalog:sizes")
	return nil
}

func (s *catalogService) invalidate(ctx context.Context, key string) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, key)
	}
}
