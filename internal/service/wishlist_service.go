package service

import (
	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// AddItem 加入心愿单，重复添加视为成功
func (s *WishlistService) AddItem(userID, productID uint) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}

	exists, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.wishlistRepo.Create(&models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	})
}

// RemoveItem 移除心愿单项
func (s *WishlistService) RemoveItem(userID, productID uint) error {
	return s.wishlistRepo.DeleteByUserAndProduct(userID, productID)
}

// ListByUser 获取心愿单，下架商品不返回
func (s *WishlistService) ListByUser(userID uint) ([]models.WishlistItem, error) {
	items, err := s.wishlistRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	visible := make([]models.WishlistItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		visible = append(visible, item)
	}
	return visible, nil
}

// Contains 判断商品是否在心愿单中
func (s *WishlistService) Contains(userID, productID uint) (bool, error) {
	return s.wishlistRepo.Exists(userID, productID)
}
