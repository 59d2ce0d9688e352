package models

import (
	"time"
)

// NewsletterSubscriber 邮件订阅记录
type NewsletterSubscriber struct {
	ID             uint       `gorm:"primarykey" json:"id"`                   // 主键
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`      // 订阅邮箱
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"` // 是否有效
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`                        // 退订时间
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`                // 订阅时间
	UpdatedAt      time.Time  `json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
