package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                       // 主键
	CategoryID       uint           `gorm:"not null;index" json:"category_id"`                          // 分类ID
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`                           // 唯一标识
	Name             string         `gorm:"not null;index" json:"name"`                                 // 商品名称
	Description      string         `gorm:"type:text" json:"description"`                               // 商品描述
	ShortDescription string         `gorm:"type:varchar(500)" json:"short_description"`                 // 简短描述
	SKU              string         `gorm:"type:varchar(100)" json:"sku"`                               // 商品编码
	Price            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`         // 售价
	ComparePrice     *Money         `gorm:"type:decimal(20,2)" json:"compare_price,omitempty"`          // 划线价（用于折扣展示）
	StockQuantity    int            `gorm:"not null;default:0" json:"stock_quantity"`                   // 库存数量
	Image            string         `gorm:"type:varchar(500)" json:"image"`                             // 主图
	Gallery          StringArray    `gorm:"type:json" json:"gallery"`                                   // 图片数组
	Tags             StringArray    `gorm:"type:json" json:"tags"`                                      // 标签数组
	IsFeatured       bool           `gorm:"default:false;index" json:"is_featured"`                     // 是否推荐
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`                        // 是否上架
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt        time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// DiscountPercent 根据划线价计算折扣百分比，无折扣返回 0
func (p *Product) DiscountPercent() int {
	if p.ComparePrice == nil {
		return 0
	}
	compare := p.ComparePrice.Decimal
	if !compare.GreaterThan(p.Price.Decimal) || compare.IsZero() {
		return 0
	}
	ratio := compare.Sub(p.Price.Decimal).Div(compare)
	return int(ratio.Mul(hundred).Round(0).IntPart())
}
