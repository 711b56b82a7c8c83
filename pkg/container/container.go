package container

import (
	"context"
	"fmt"

	"hoodlab-backend/internal/config"
	infraCache "hoodlab-backend/internal/infrastructure/cache"
	"hoodlab-backend/internal/infrastructure/database"
	"hoodlab-backend/pkg/cache"
	"hoodlab-backend/pkg/jwt"
	"hoodlab-backend/pkg/logger"

	cartHandler "hoodlab-backend/internal/domains/cart/handler"
	cartRepo "hoodlab-backend/internal/domains/cart/repository"
	cartService "hoodlab-backend/internal/domains/cart/service"
	catalogHandler "hoodlab-backend/internal/domains/catalog/handler"
	catalogRepo "hoodlab-backend/internal/domains/catalog/repository"
	catalogService "hoodlab-backend/internal/domains/catalog/service"
	orderHandler "hoodlab-backend/internal/domains/order/handler"
	orderRepo "hoodlab-backend/internal/domains/order/repository"
	orderService "hoodlab-backend/internal/domains/order/service"
	"hoodlab-backend/internal/domains/payment/gateway"
	"hoodlab-backend/internal/domains/payment/gateway/momo"
	"hoodlab-backend/internal/domains/payment/gateway/vnpay"
	paymentHandler "hoodlab-backend/internal/domains/payment/handler"
	paymentService "hoodlab-backend/internal/domains/payment/service"
	productHandler "hoodlab-backend/internal/domains/product/handler"
	productRepo "hoodlab-backend/internal/domains/product/repository"
	productService "hoodlab-backend/internal/domains/product/service"
	userHandler "hoodlab-backend/internal/domains/user/handler"
	userRepo "hoodlab-backend/internal/domains/user/repository"
	userService "hoodlab-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER
// ========================================

// Container là root của dependency graph. Mọi thành phần là singleton,
// sống trọn đời process.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	UserRepo    userRepo.UserRepository
	CatalogRepo catalogRepo.CatalogRepository
	ProductRepo productRepo.ProductRepository
	CartRepo    cartRepo.CartRepository
	OrderRepo   orderRepo.OrderRepository

	// Gateways
	VNPayGateway gateway.VNPayGateway
	MomoGateway  gateway.MomoGateway

	// Services
	UserService    userService.UserService
	CatalogService catalogService.CatalogService
	ProductService productService.ProductService
	CartService    cartService.CartService
	OrderService   orderService.OrderService
	PaymentService paymentService.PaymentService

	// Handlers
	UserHandler    *userHandler.UserHandler
	CatalogHandler *catalogHandler.CatalogHandler
	ProductHandler *productHandler.ProductHandler
	CartHandler    *cartHandler.CartHandler
	OrderHandler   *orderHandler.OrderHandler
	PaymentHandler *paymentHandler.PaymentHandler
}

// NewContainer dựng toàn bộ dependency graph theo thứ tự:
// config -> infrastructure -> repositories -> gateways -> services -> handlers
func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	// Step 1: Config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	// Step 2: Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	// Step 3: Redis cache - optional, app vẫn chạy khi Redis down
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, cache disabled", map[string]interface{}{"error": err.Error()})
	} else {
		c.Cache = redisCache
	}

	// Step 4: JWT
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Step 5: Payment gateways
	vnpayGW, err := vnpay.NewClient(vnpay.NewConfig(
		cfg.VNPay.TmnCode, cfg.VNPay.HashSecret, cfg.VNPay.APIURL,
		cfg.VNPay.ReturnURL, cfg.VNPay.IPNURL,
	))
	if err != nil {
		return nil, fmt.Errorf("init vnpay gateway: %w", err)
	}
	c.VNPayGateway = vnpayGW

	momoGW, err := momo.NewClient(momo.NewConfig(
		cfg.Momo.PartnerCode, cfg.Momo.AccessKey, cfg.Momo.SecretKey,
		cfg.Momo.APIURL, cfg.Momo.ReturnURL, cfg.Momo.IPNURL,
	))
	if err != nil {
		return nil, fmt.Errorf("init momo gateway: %w", err)
	}
	c.MomoGateway = momoGW

	// Step 6: Repositories
	pool := db.Pool
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.CatalogRepo = catalogRepo.NewPostgresRepository(pool)
	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.CartRepo = cartRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresRepository(pool)

	// Step 7: Services
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.CatalogService = catalogService.NewCatalogService(c.CatalogRepo, c.Cache)
	c.ProductService = productService.NewProductService(c.ProductRepo, c.Cache)
	c.CartService = cartService.NewCartService(c.CartRepo)
	c.OrderService = orderService.NewOrderService(c.OrderRepo, c.CartRepo)
	c.PaymentService = paymentService.NewPaymentService(c.OrderRepo, c.VNPayGateway, c.MomoGateway)

	// Step 8: Handlers
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.PaymentService, cfg.App.FrontendURL)

	return c, nil
}

// Close giải phóng connection theo thứ tự ngược với init
func (c *Container) Close() {
	if closer, ok := c.Cache.(interface{ Close() error }); ok && c.Cache != nil {
		_ = closer.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
