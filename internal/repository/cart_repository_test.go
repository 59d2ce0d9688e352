package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/openmart/openmart/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCartRepository(db), db
}

func TestCartRepositoryCreateAndUpdateQuantity(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	if err := repo.Create(&models.CartItem{UserID: 1, ProductID: 10, Quantity: 2}); err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}

	item, err := repo.GetByUserAndProduct(1, 10)
	if err != nil {
		t.Fatalf("get cart item failed: %v", err)
	}
	if item == nil || item.Quantity != 2 {
		t.Fatalf("cart item quantity want 2 got %+v", item)
	}

	if err := repo.UpdateQuantity(1, 10, 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	item, _ = repo.GetByUserAndProduct(1, 10)
	if item.Quantity != 5 {
		t.Fatalf("cart item quantity want 5 got %d", item.Quantity)
	}

	// 不存在的组合返回 nil 而非错误
	item, err = repo.GetByUserAndProduct(1, 99)
	if err != nil {
		t.Fatalf("get missing cart item failed: %v", err)
	}
	if item != nil {
		t.Fatalf("missing cart item should be nil")
	}
}

func TestCartRepositoryClearByUser(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	for _, productID := range []uint{10, 11, 12} {
		if err := repo.Create(&models.CartItem{UserID: 1, ProductID: productID, Quantity: 1}); err != nil {
			t.Fatalf("create cart item failed: %v", err)
		}
	}
	if err := repo.Create(&models.CartItem{UserID: 2, ProductID: 10, Quantity: 1}); err != nil {
		t.Fatalf("create cart item for other user failed: %v", err)
	}

	if err := repo.ClearByUser(1); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}

	items, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be empty, got %d items", len(items))
	}

	otherItems, err := repo.ListByUser(2)
	if err != nil {
		t.Fatalf("list other cart failed: %v", err)
	}
	if len(otherItems) != 1 {
		t.Fatalf("other user cart want 1 item got %d", len(otherItems))
	}
}

func TestCartRepositoryDeleteByUserAndProduct(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	if err := repo.Create(&models.CartItem{UserID: 1, ProductID: 10, Quantity: 1}); err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	if err := repo.DeleteByUserAndProduct(1, 10); err != nil {
		t.Fatalf("delete cart item failed: %v", err)
	}
	item, err := repo.GetByUserAndProduct(1, 10)
	if err != nil {
		t.Fatalf("get cart item failed: %v", err)
	}
	if item != nil {
		t.Fatalf("cart item should be deleted")
	}
}
