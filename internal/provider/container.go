package provider

import (
	"github.com/openmart/openmart/internal/cache"
	"github.com/openmart/openmart/internal/config"
	"github.com/openmart/openmart/internal/logger"
	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/queue"
	"github.com/openmart/openmart/internal/repository"
	"github.com/openmart/openmart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo       repository.UserRepository
	CategoryRepo   repository.CategoryRepository
	ProductRepo    repository.ProductRepository
	CartRepo       repository.CartRepository
	WishlistRepo   repository.WishlistRepository
	OrderRepo      repository.OrderRepository
	CouponRepo     repository.CouponRepository
	ReviewRepo     repository.ReviewRepository
	NewsletterRepo repository.NewsletterRepository

	// Services
	UserService       *service.UserService
	EmailService      *service.EmailService
	CategoryService   *service.CategoryService
	ProductService    *service.ProductService
	CartService       *service.CartService
	WishlistService   *service.WishlistService
	CouponService     *service.CouponService
	OrderService      *service.OrderService
	ReviewService     *service.ReviewService
	NewsletterService *service.NewsletterService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.NewsletterRepo = repository.NewNewsletterRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.UserService = service.NewUserService(c.Config, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.ReviewRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.OrderService = service.NewOrderService(
		c.Config,
		c.OrderRepo,
		c.ProductRepo,
		c.CartRepo,
		c.CouponRepo,
		c.UserRepo,
		c.CouponService,
		c.QueueClient,
	)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.NewsletterService = service.NewNewsletterService(c.NewsletterRepo, c.QueueClient)
}
