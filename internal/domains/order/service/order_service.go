package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	cartrepo "hoodlab-backend/internal/domains/cart/repository"
	"hoodlab-backend/internal/domains/order"
	"hoodlab-backend/internal/domains/order/model"
	"hoodlab-backend/internal/domains/order/repository"
	"hoodlab-backend/pkg/logger"
)

type OrderService interface {
	Checkout(ctx context.Context, userID int64, req model.CheckoutRequest) (*model.Order, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*model.Order, error)
	ListOrders(ctx context.Context, userID int64, q model.ListOrdersQuery) (*model.OrderList, error)
	CancelOrder(ctx context.Context, userID, orderID int64) error

	AdminListOrders(ctx context.Context, q model.ListOrdersQuery) (*model.OrderList, error)
	AdminUpdateStatus(ctx context.Context, orderID int64, req model.UpdateOrderStatusRequest) error
	GetSalesStats(ctx context.Context, from, to time.Time) (*model.SalesStats, error)
}

type orderService struct {
	repo     repository.OrderRepository
	cartRepo cartrepo.CartRepository
}

func NewOrderService(repo repository.OrderRepository, cartRepo cartrepo.CartRepository) OrderService {
	return &orderService{repo: repo, cartRepo: cartRepo}
}

// Checkout tạo order từ giỏ hiện tại.
// Snapshot tên sản phẩm/màu/size/giá vào order_items - đơn cũ không được
// đổi nội dung khi admin sửa catalog sau này.
func (s *orderService) Checkout(ctx context.Context, userID int64, req model.CheckoutRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cartItems, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, order.ErrEmptyCart
	}

	o := &model.Order{
		OrderNumber:     model.NewOrderNumber(),
		UserID:          userID,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		OrderStatus:     model.OrderStatusPending,
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     decimal.Zero,
	}

	for _, ci := range cartItems {
		o.Items = append(o.Items, model.OrderItem{
			VariantID:   ci.VariantID,
			SizeID:      ci.SizeID,
			ProductName: ci.ProductName,
			ColorName:   ci.ColorName,
			SizeName:    ci.SizeName,
			UnitPrice:   ci.UnitPrice,
			Quantity:    ci.Quantity,
		})
		o.TotalAmount = o.TotalAmount.Add(ci.LineTotal())
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	logger.Info("order created", map[string]interface{}{
		"order_number": o.OrderNumber,
		"user_id":      userID,
		"total":        o.TotalAmount.String(),
		"method":       o.PaymentMethod,
	})
	return o, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return s.repo.GetByIDAndUser(ctx, orderID, userID)
}

func (s *orderService) ListOrders(ctx context.Context, userID int64, q model.ListOrdersQuery) (*model.OrderList, error) {
	q.Normalize()
	return s.repo.ListByUser(ctx, userID, q)
}

// CancelOrder - user tự hủy đơn chưa thanh toán, trả lại tồn kho
func (s *orderService) CancelOrder(ctx context.Context, userID, orderID int64) error {
	o, err := s.repo.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return err
	}

	if o.PaymentStatus == model.PaymentStatusPaid {
		return order.ErrAlreadyPaid
	}
	if !o.OrderStatus.CanTransitionTo(model.OrderStatusCancelled) {
		return order.ErrNotCancellable
	}

	return s.repo.CancelAndRestock(ctx, o)
}

func (s *orderService) AdminListOrders(ctx context.Context, q model.ListOrdersQuery) (*model.OrderList, error) {
	q.Normalize()
	return s.repo.ListAll(ctx, q)
}

func (s *orderService) AdminUpdateStatus(ctx context.Context, orderID int64, req model.UpdateOrderStatusRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	next := model.OrderStatus(req.OrderStatus)
	if !o.OrderStatus.CanTransitionTo(next) {
		return order.ErrInvalidTransition
	}

	return s.repo.UpdateOrderStatus(ctx, orderID, next)
}

func (s *orderService) GetSalesStats(ctx context.Context, from, to time.Time) (*model.SalesStats, error) {
	return s.repo.GetSalesStats(ctx, from, to)
}
