package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNumber     string         `gorm:"uniqueIndex;not null" json:"order_number"`                      // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                                 // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                                  // 订单状态
	PaymentStatus   string         `gorm:"index;not null" json:"payment_status"`                          // 支付状态
	PaymentMethod   string         `gorm:"not null" json:"payment_method"`                                // 支付方式
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`     // 商品总额
	ShippingAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_amount"`  // 运费
	TaxAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`       // 税费
	DiscountAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`  // 优惠金额
	FinalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"final_amount"`     // 应付金额
	CouponID        *uint          `gorm:"index" json:"coupon_id,omitempty"`                              // 优惠券ID
	ShippingAddress string         `gorm:"type:text;not null" json:"shipping_address"`                    // 收货地址
	BillingAddress  string         `gorm:"type:text;not null" json:"billing_address"`                     // 账单地址
	CustomerNotes   string         `gorm:"type:text" json:"customer_notes"`                               // 客户备注
	AdminNotes      string         `gorm:"type:text" json:"admin_notes"`                                  // 管理员备注
	CancelledAt     *time.Time     `gorm:"index" json:"cancelled_at"`                                     // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
