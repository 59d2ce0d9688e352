package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/openmart/openmart/internal/config"
	"github.com/openmart/openmart/internal/constants"
	"github.com/openmart/openmart/internal/logger"
	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/queue"
	"github.com/openmart/openmart/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	cfg           *config.Config
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	cartRepo      repository.CartRepository
	couponRepo    repository.CouponRepository
	userRepo      repository.UserRepository
	couponService *CouponService
	queueClient   *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	couponRepo repository.CouponRepository,
	userRepo repository.UserRepository,
	couponService *CouponService,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		cfg:           cfg,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		cartRepo:      cartRepo,
		couponRepo:    couponRepo,
		userRepo:      userRepo,
		couponService: couponService,
		queueClient:   queueClient,
	}
}

// CreateOrderItem 下单商品项
type CreateOrderItem struct {
	ProductID uint
	Quantity  int
}

// CreateOrderInput 创建订单参数
type CreateOrderInput struct {
	UserID          uint
	Items           []CreateOrderItem
	PaymentMethod   string
	ShippingAddress string
	BillingAddress  string
	CustomerNotes   string
	CouponCode      string
	// FromCart 为 true 时下单成功后在同一事务内清空购物车
	FromCart bool
}

// CreateOrder 创建订单。
// 订单头、订单项快照、库存扣减在同一事务内完成，任一失败整体回滚。
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrValidation
	}
	items, err := mergeOrderItems(input.Items)
	if err != nil {
		return nil, err
	}
	if !isPaymentMethodSupported(input.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	input.ShippingAddress = strings.TrimSpace(input.ShippingAddress)
	input.BillingAddress = strings.TrimSpace(input.BillingAddress)
	if input.ShippingAddress == "" {
		return nil, ErrInvalidAddress
	}
	if input.BillingAddress == "" {
		input.BillingAddress = input.ShippingAddress
	}

	// 加载商品并构建快照
	orderItems := make([]models.OrderItem, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, ErrProductNotFound
		}
		lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItems = append(orderItems, models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			Quantity:     item.Quantity,
			TotalPrice:   models.NewMoneyFromDecimal(lineTotal),
		})
		subtotal = subtotal.Add(lineTotal)
	}

	// 优惠券
	var coupon *models.Coupon
	discount := decimal.Zero
	if strings.TrimSpace(input.CouponCode) != "" {
		coupon, discount, err = s.couponService.ApplyCoupon(input.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
	}

	shipping := s.shippingAmount(subtotal)
	tax := s.taxAmount(subtotal)
	final := subtotal.Add(shipping).Add(tax).Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	order := &models.Order{
		UserID:          input.UserID,
		Status:          constants.OrderStatusPending,
		PaymentStatus:   constants.PaymentStatusPending,
		PaymentMethod:   input.PaymentMethod,
		TotalAmount:     models.NewMoneyFromDecimal(subtotal),
		ShippingAmount:  models.NewMoneyFromDecimal(shipping),
		TaxAmount:       models.NewMoneyFromDecimal(tax),
		DiscountAmount:  models.NewMoneyFromDecimal(discount),
		FinalAmount:     models.NewMoneyFromDecimal(final),
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		CustomerNotes:   strings.TrimSpace(input.CustomerNotes),
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
	}

	if err := s.createWithRetry(order, orderItems, coupon, input); err != nil {
		return nil, err
	}

	s.enqueueOrderEmail(constants.TaskOrderConfirmEmail, order)
	return order, nil
}

// createWithRetry 执行下单事务，订单号冲突时重新生成并重试
func (s *OrderService) createWithRetry(order *models.Order, items []models.OrderItem, coupon *models.Coupon, input CreateOrderInput) error {
	for attempt := 0; attempt < constants.OrderNumberMaxAttempts; attempt++ {
		orderNumber, err := generateOrderNumber()
		if err != nil {
			return err
		}
		order.ID = 0
		order.OrderNumber = orderNumber

		txItems := make([]models.OrderItem, len(items))
		copy(txItems, items)

		err = models.DB.Transaction(func(tx *gorm.DB) error {
			orderRepo := s.orderRepo.WithTx(tx)
			productRepo := s.productRepo.WithTx(tx)

			if err := orderRepo.Create(order, txItems); err != nil {
				return err
			}
			for _, item := range txItems {
				affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
				if err != nil {
					return err
				}
				if affected == 0 {
					return ErrInsufficientStock
				}
			}
			if coupon != nil {
				affected, err := s.couponRepo.WithTx(tx).IncrementUsedCount(coupon.ID)
				if err != nil {
					return err
				}
				if affected == 0 {
					return ErrCouponUsedUp
				}
			}
			if input.FromCart {
				if err := s.cartRepo.WithTx(tx).ClearByUser(input.UserID); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrCouponUsedUp) {
			return err
		}
		if isDuplicateKeyError(err) {
			logger.Warnw("order_number_conflict_retry", "order_number", order.OrderNumber, "attempt", attempt+1)
			continue
		}
		logger.Errorw("order_create_tx_failed", "error", err, "user_id", input.UserID)
		return fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	return ErrOrderCreateFailed
}

// CreateOrderFromCart 基于购物车快照下单，下架商品不计入
func (s *OrderService) CreateOrderFromCart(input CreateOrderInput) (*models.Order, error) {
	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	items := make([]CreateOrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		items = append(items, CreateOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	input.Items = items
	input.FromCart = true
	return s.CreateOrder(input)
}

// GetOrderForUser 获取用户订单详情
func (s *OrderService) GetOrderForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByNumberForUser 按订单编号获取用户订单详情
func (s *OrderService) GetOrderByNumberForUser(orderNumber string, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNumber(strings.TrimSpace(orderNumber))
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrder 后台获取订单详情
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// ListOrdersAdmin 后台订单列表
func (s *OrderService) ListOrdersAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// UpdateOrderStatus 后台更新订单状态。
// 取消已占用库存的订单时在同一事务内回补库存并回退优惠券使用次数。
func (s *OrderService) UpdateOrderStatus(orderID uint, status, adminNotes string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !isOrderStatusSupported(status) {
		return nil, ErrInvalidOrderStatus
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if adminNotes != "" {
		updates["admin_notes"] = adminNotes
	}

	cancelling := status == constants.OrderStatusCancelled && order.Status != constants.OrderStatusCancelled
	if cancelling {
		now := time.Now()
		updates["cancelled_at"] = &now
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).UpdateStatus(orderID, updates); err != nil {
			return err
		}
		if !cancelling {
			return nil
		}
		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if order.CouponID != nil {
			if err := s.couponRepo.WithTx(tx).DecrementUsedCount(*order.CouponID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	s.enqueueOrderEmail(constants.TaskOrderStatusEmail, updated)
	return updated, nil
}

// UpdatePaymentStatus 后台更新支付状态
func (s *OrderService) UpdatePaymentStatus(orderID uint, paymentStatus string) (*models.Order, error) {
	paymentStatus = strings.ToLower(strings.TrimSpace(paymentStatus))
	if !isPaymentStatusSupported(paymentStatus) {
		return nil, ErrValidation
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	updates := map[string]interface{}{
		"payment_status": paymentStatus,
		"updated_at":     time.Now(),
	}
	if err := s.orderRepo.UpdateStatus(orderID, updates); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// CancelOrderByUser 用户取消订单，仅限待处理状态
func (s *OrderService) CancelOrderByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return nil, ErrOrderNotCancellable
	}
	return s.UpdateOrderStatus(orderID, constants.OrderStatusCancelled, "")
}

// SalesStats 销售统计
func (s *OrderService) SalesStats() (*repository.SalesStats, error) {
	return s.orderRepo.SalesStats()
}

func (s *OrderService) shippingAmount(subtotal decimal.Decimal) decimal.Decimal {
	fee := decimal.NewFromFloat(s.cfg.Order.ShippingFee)
	if fee.IsNegative() {
		return decimal.Zero
	}
	threshold := decimal.NewFromFloat(s.cfg.Order.FreeShippingMin)
	if threshold.IsPositive() && !subtotal.LessThan(threshold) {
		return decimal.Zero
	}
	return fee.Round(2)
}

func (s *OrderService) taxAmount(subtotal decimal.Decimal) decimal.Decimal {
	rate := decimal.NewFromFloat(s.cfg.Order.TaxRatePercent)
	if !rate.IsPositive() {
		return decimal.Zero
	}
	return subtotal.Mul(rate).Div(percentBase).Round(2)
}

func (s *OrderService) enqueueOrderEmail(taskType string, order *models.Order) {
	if s.queueClient == nil || !s.queueClient.Enabled() || order == nil {
		return
	}
	user, err := s.userRepo.GetByID(order.UserID)
	if err != nil || user == nil {
		return
	}
	task, err := queue.NewOrderEmailTask(taskType, queue.OrderEmailPayload{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Email:       user.Email,
		Status:      order.Status,
	})
	if err != nil {
		logger.Warnw("order_email_task_build_failed", "error", err, "order_id", order.ID)
		return
	}
	if err := s.queueClient.Enqueue(task); err != nil {
		logger.Warnw("order_email_task_enqueue_failed", "error", err, "order_id", order.ID)
	}
}

// mergeOrderItems 合并重复商品并校验数量
func mergeOrderItems(items []CreateOrderItem) ([]CreateOrderItem, error) {
	if len(items) == 0 {
		return nil, ErrInvalidOrderItem
	}
	index := make(map[uint]int, len(items))
	merged := make([]CreateOrderItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity < 1 {
			return nil, ErrInvalidOrderItem
		}
		if pos, ok := index[item.ProductID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

const orderNumberCharset = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// generateOrderNumber 生成订单编号：前缀 + 日期 + 随机后缀
func generateOrderNumber() (string, error) {
	var b strings.Builder
	b.WriteString(constants.OrderNumberPrefix)
	b.WriteString(time.Now().Format("20060102"))
	for i := 0; i < constants.OrderNumberSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderNumberCharset))))
		if err != nil {
			return "", err
		}
		b.WriteByte(orderNumberCharset[n.Int64()])
	}
	return b.String(), nil
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

func isPaymentMethodSupported(method string) bool {
	for _, m := range constants.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func isOrderStatusSupported(status string) bool {
	for _, st := range constants.OrderStatuses {
		if st == status {
			return true
		}
	}
	return false
}

func isPaymentStatusSupported(status string) bool {
	for _, st := range constants.PaymentStatuses {
		if st == status {
			return true
		}
	}
	return false
}
