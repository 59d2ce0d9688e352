package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductListFilter 商品列表筛选
type ProductListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Featured   bool
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       string
	// OnlyActive 为 true 时仅返回上架商品（商城端）；后台列表传 false
	OnlyActive bool
}

// OrderListFilter 订单列表筛选
type OrderListFilter struct {
	Page          int
	PageSize      int
	UserID        uint
	Status        string
	PaymentStatus string
	OrderNumber   string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// UserListFilter 用户列表筛选
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Role        string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReviewListFilter 评价列表筛选
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
}

// CouponListFilter 优惠券列表筛选
type CouponListFilter struct {
	Page     int
	PageSize int
	Code     string
	IsActive *bool
}
