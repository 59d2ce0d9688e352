package service

import (
	"strings"

	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// ListCategories 商城端分类列表（仅启用）
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List(true)
}

// ListAllCategories 后台分类列表
func (s *CategoryService) ListAllCategories() ([]models.Category, error) {
	return s.categoryRepo.List(false)
}

// GetCategory 商城端获取分类，停用分类视为不存在
func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil || !category.IsActive {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetCategoryBySlug 商城端按 slug 获取分类
func (s *CategoryService) GetCategoryBySlug(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if category == nil || !category.IsActive {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// CategoryInput 分类写入参数
type CategoryInput struct {
	Slug        string
	Name        string
	Description string
	Image       string
	IsActive    bool
	SortOrder   int
}

// CreateCategory 后台创建分类
func (s *CategoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	if err := s.validateInput(&input, 0); err != nil {
		return nil, err
	}
	category := &models.Category{
		Slug:        input.Slug,
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		IsActive:    input.IsActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory 后台更新分类
func (s *CategoryService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	if err := s.validateInput(&input, id); err != nil {
		return nil, err
	}

	category.Slug = input.Slug
	category.Name = input.Name
	category.Description = input.Description
	category.Image = input.Image
	category.IsActive = input.IsActive
	category.SortOrder = input.SortOrder

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory 后台删除分类，分类下仍有商品时拒绝
func (s *CategoryService) DeleteCategory(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(id)
}

func (s *CategoryService) validateInput(input *CategoryInput, excludeID uint) error {
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Name = strings.TrimSpace(input.Name)
	if input.Slug == "" || input.Name == "" {
		return ErrValidation
	}
	count, err := s.categoryRepo.CountBySlug(input.Slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}
