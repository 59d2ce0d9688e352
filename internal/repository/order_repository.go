package repository

import (
	"errors"

	"github.com/openmart/openmart/internal/constants"
	"github.com/openmart/openmart/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDForUser(id, userID uint) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, updates map[string]interface{}) error
	SalesStats() (*SalesStats, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// SalesStats 销售统计（不含已取消订单）
type SalesStats struct {
	TotalOrders       int64        `json:"total_orders"`
	TotalSales        models.Money `json:"total_sales"`
	AverageOrderValue models.Money `json:"average_order_value"`
	TotalCustomers    int64        `json:"total_customers"`
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := r.db.Create(&items).Error; err != nil {
		return err
	}
	order.Items = items
	return nil
}

// GetByID 根据ID获取订单（含订单项）
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Preload("User").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUser 获取归属于指定用户的订单
func (r *GormOrderRepository) GetByIDForUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByOrderNumber 根据订单编号获取订单
func (r *GormOrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List 获取订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.OrderNumber != "" {
		query = query.Where("order_number = ?", filter.OrderNumber)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 更新订单状态相关字段
func (r *GormOrderRepository) UpdateStatus(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// SalesStats 聚合销售统计，排除已取消订单
func (r *GormOrderRepository) SalesStats() (*SalesStats, error) {
	var row struct {
		TotalOrders    int64
		TotalSales     models.Money
		AverageValue   models.Money
		TotalCustomers int64
	}
	err := r.db.Model(&models.Order{}).
		Select(
			"COUNT(*) AS total_orders, " +
				"COALESCE(SUM(final_amount), 0) AS total_sales, " +
				"COALESCE(AVG(final_amount), 0) AS average_value, " +
				"COUNT(DISTINCT user_id) AS total_customers",
		).
		Where("status <> ?", constants.OrderStatusCancelled).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &SalesStats{
		TotalOrders:       row.TotalOrders,
		TotalSales:        row.TotalSales,
		AverageOrderValue: row.AverageValue,
		TotalCustomers:    row.TotalCustomers,
	}, nil
}
