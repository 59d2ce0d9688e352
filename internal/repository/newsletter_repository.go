package repository

import (
	"errors"

	"github.com/openmart/openmart/internal/models"

	"gorm.io/gorm"
)

// NewsletterRepository 邮件订阅数据访问接口
type NewsletterRepository interface {
	GetByEmail(email string) (*models.NewsletterSubscriber, error)
	Create(subscriber *models.NewsletterSubscriber) error
	Update(subscriber *models.NewsletterSubscriber) error
	List(page, pageSize int, onlyActive bool) ([]models.NewsletterSubscriber, int64, error)
}

// GormNewsletterRepository GORM 实现
type GormNewsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository 创建邮件订阅仓库
func NewNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// GetByEmail 根据邮箱获取订阅记录
func (r *GormNewsletterRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	err := r.db.Where("email = ?", email).First(&subscriber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// Create 创建订阅记录
func (r *GormNewsletterRepository) Create(subscriber *models.NewsletterSubscriber) error {
	return r.db.Create(subscriber).Error
}

// Update 更新订阅记录
func (r *GormNewsletterRepository) Update(subscriber *models.NewsletterSubscriber) error {
	return r.db.Save(subscriber).Error
}

// List 获取订阅列表
func (r *GormNewsletterRepository) List(page, pageSize int, onlyActive bool) ([]models.NewsletterSubscriber, int64, error) {
	query := r.db.Model(&models.NewsletterSubscriber{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var subscribers []models.NewsletterSubscriber
	if err := query.Order("created_at DESC").Find(&subscribers).Error; err != nil {
		return nil, 0, err
	}
	return subscribers, total, nil
}
