package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// StringArray 字符串数组类型，用于存储 gallery、tags 等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, isStr := value.(string); isStr {
			bytes = []byte(str)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, s)
}

// Category 分类表
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`                 // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`     // 唯一标识
	Name        string         `gorm:"not null" json:"name"`                 // 分类名称
	Description string         `gorm:"type:text" json:"description"`         // 分类描述
	Image       string         `gorm:"type:varchar(500)" json:"image"`       // 分类图片
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`  // 是否启用
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`    // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
