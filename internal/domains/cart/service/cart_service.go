package service

import (
	"context"

	"github.com/shopspring/decimal"

	"hoodlab-backend/internal/domains/cart"
	"hoodlab-backend/internal/domains/cart/model"
	"hoodlab-backend/internal/domains/cart/repository"
)

type CartService interface {
	GetCart(ctx context.Context, userID int64) (*model.CartSummary, error)
	AddItem(ctx context.Context, userID int64, req model.AddItemRequest) (*model.CartItem, error)
	UpdateItem(ctx context.Context, userID, itemID int64, req model.UpdateItemRequest) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

func (s *cartService) GetCart(ctx context.Context, userID int64) (*model.CartSummary, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LineTotal())
	}

	return &model.CartSummary{Items: items, Total: total}, nil
}

// AddItem check tồn kho trước khi thêm. Check này chỉ để UX sớm -
// stock thật sự được chốt lại trong transaction checkout.
func (s *cartService) AddItem(ctx context.Context, userID int64, req model.AddItemRequest) (*model.CartItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	stock, err := s.repo.GetStock(ctx, req.VariantID, req.SizeID)
	if err != nil {
		return nil, err
	}
	if stock < req.Quantity {
		return nil, cart.ErrInsufficientStock
	}

	item := &model.CartItem{
		UserID:    userID,
		VariantID: req.VariantID,
		SizeID:    req.SizeID,
		Quantity:  req.Quantity,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) UpdateItem(ctx context.Context, userID, itemID int64, req model.UpdateItemRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.UpdateQuantity(ctx, userID, itemID, req.Quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	return s.repo.Remove(ctx, userID, itemID)
}

func (s *cartService) Clear(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}
