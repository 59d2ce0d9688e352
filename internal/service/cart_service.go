package service

import (
	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartLine 购物车行（含商品快照与小计）
type CartLine struct {
	ProductID     uint          `json:"product_id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Image         string        `json:"image"`
	Price         models.Money  `json:"price"`
	ComparePrice  *models.Money `json:"compare_price,omitempty"`
	StockQuantity int           `json:"stock_quantity"`
	Quantity      int           `json:"quantity"`
	LineTotal     models.Money  `json:"line_total"`
}

// CartSnapshot 购物车快照
type CartSnapshot struct {
	Items     []CartLine   `json:"items"`
	ItemCount int          `json:"item_count"`
	Subtotal  models.Money `json:"subtotal"`
}

// AddItem 加入购物车，已存在时累加数量
func (s *CartService) AddItem(userID, productID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}

	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.cartRepo.Create(&models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}
	return s.cartRepo.UpdateQuantity(userID, productID, existing.Quantity+quantity)
}

// SetQuantity 设置购物车项数量，0 等价于移除
func (s *CartService) SetQuantity(userID, productID uint, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(userID, productID)
	}

	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.UpdateQuantity(userID, productID, quantity)
}

// RemoveItem 移除购物车项
func (s *CartService) RemoveItem(userID, productID uint) error {
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

// Snapshot 获取购物车快照，下架商品不计入
func (s *CartService) Snapshot(userID uint) (*CartSnapshot, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	snapshot := &CartSnapshot{
		Items:    []CartLine{},
		Subtotal: models.ZeroMoney(),
	}
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			continue
		}
		lineTotal := item.Product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		snapshot.Items = append(snapshot.Items, CartLine{
			ProductID:     item.ProductID,
			Name:          item.Product.Name,
			Slug:          item.Product.Slug,
			Image:         item.Product.Image,
			Price:         item.Product.Price,
			ComparePrice:  item.Product.ComparePrice,
			StockQuantity: item.Product.StockQuantity,
			Quantity:      item.Quantity,
			LineTotal:     models.NewMoneyFromDecimal(lineTotal),
		})
		snapshot.ItemCount += item.Quantity
		snapshot.Subtotal = models.NewMoneyFromDecimal(snapshot.Subtotal.Decimal.Add(lineTotal))
	}
	return snapshot, nil
}
