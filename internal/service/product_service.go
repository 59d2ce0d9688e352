package service

import (
	"strings"

	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	reviewRepo   repository.ReviewRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, reviewRepo repository.ReviewRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
	}
}

// ProductDetail 商品详情（含评分聚合）
type ProductDetail struct {
	models.Product
	DiscountPercent int     `json:"discount_percent"`
	RatingAverage   float64 `json:"rating_average"`
	RatingCount     int64   `json:"rating_count"`
}

// ListProducts 商城端商品列表（仅上架商品）
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	return s.productRepo.List(filter)
}

// ListAllProducts 后台商品列表（含下架商品）
func (s *ProductService) ListAllProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = false
	return s.productRepo.List(filter)
}

// GetProduct 商城端获取商品详情，下架商品视为不存在
func (s *ProductService) GetProduct(id uint) (*ProductDetail, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return s.buildDetail(product)
}

// GetProductBySlug 商城端按 slug 获取商品详情
func (s *ProductService) GetProductBySlug(slug string) (*ProductDetail, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return s.buildDetail(product)
}

func (s *ProductService) buildDetail(product *models.Product) (*ProductDetail, error) {
	avg, count, err := s.reviewRepo.AggregateByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{
		Product:         *product,
		DiscountPercent: product.DiscountPercent(),
		RatingAverage:   avg,
		RatingCount:     count,
	}, nil
}

// ProductInput 商品写入参数
type ProductInput struct {
	CategoryID       uint
	Slug             string
	Name             string
	Description      string
	ShortDescription string
	SKU              string
	Price            decimal.Decimal
	ComparePrice     *decimal.Decimal
	StockQuantity    int
	Image            string
	Gallery          []string
	Tags             []string
	IsFeatured       bool
	IsActive         bool
}

// CreateProduct 后台创建商品
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(&input, 0); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:       input.CategoryID,
		Slug:             input.Slug,
		Name:             input.Name,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		SKU:              input.SKU,
		Price:            models.NewMoneyFromDecimal(input.Price),
		StockQuantity:    input.StockQuantity,
		Image:            input.Image,
		Gallery:          input.Gallery,
		Tags:             input.Tags,
		IsFeatured:       input.IsFeatured,
		IsActive:         input.IsActive,
	}
	if input.ComparePrice != nil {
		compare := models.NewMoneyFromDecimal(*input.ComparePrice)
		product.ComparePrice = &compare
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 后台更新商品
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.validateInput(&input, id); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Slug = input.Slug
	product.Name = input.Name
	product.Description = input.Description
	product.ShortDescription = input.ShortDescription
	product.SKU = input.SKU
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.ComparePrice = nil
	if input.ComparePrice != nil {
		compare := models.NewMoneyFromDecimal(*input.ComparePrice)
		product.ComparePrice = &compare
	}
	product.StockQuantity = input.StockQuantity
	product.Image = input.Image
	product.Gallery = input.Gallery
	product.Tags = input.Tags
	product.IsFeatured = input.IsFeatured
	product.IsActive = input.IsActive

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct 后台删除商品
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *ProductService) validateInput(input *ProductInput, excludeID uint) error {
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Name = strings.TrimSpace(input.Name)
	if input.Slug == "" || input.Name == "" {
		return ErrValidation
	}
	if input.Price.IsNegative() || input.StockQuantity < 0 {
		return ErrValidation
	}
	if input.ComparePrice != nil && input.ComparePrice.IsNegative() {
		return ErrValidation
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	count, err := s.productRepo.CountBySlug(input.Slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}
