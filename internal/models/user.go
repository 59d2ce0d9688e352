package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`              // 主键
	Email        string         `gorm:"uniqueIndex;not null" json:"email"` // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                 // 密码哈希（不返回给前端）
	Name         string         `gorm:"not null" json:"name"`              // 姓名
	Phone        string         `gorm:"type:varchar(20)" json:"phone"`     // 电话
	Address      string         `gorm:"type:varchar(500)" json:"address"`  // 地址
	City         string         `gorm:"type:varchar(100)" json:"city"`     // 城市
	State        string         `gorm:"type:varchar(100)" json:"state"`    // 省/州
	ZipCode      string         `gorm:"type:varchar(20)" json:"zip_code"`  // 邮编
	Role         string         `gorm:"default:'customer'" json:"role"`    // 角色（customer/admin）
	Status       string         `gorm:"default:'active'" json:"status"`    // 账号状态
	TokenVersion uint64         `gorm:"not null;default:0" json:"-"`       // Token 版本（用于全量失效）
	LastLoginAt  *time.Time     `json:"last_login_at"`                     // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                        // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                    // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
