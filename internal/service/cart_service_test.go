package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/openmart/openmart/internal/models"
	"github.com/openmart/openmart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db)), db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, slug, price string, active bool) *models.Product {
	t.Helper()
	category := &models.Category{Slug: "cat-" + slug, Name: slug, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:    category.ID,
		Slug:          slug,
		Name:          slug,
		Price:         models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		StockQuantity: 10,
		IsActive:      active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestCartServiceAddItemAccumulates(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "earbuds", "20.00", true)

	if err := svc.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.AddItem(1, product.ID, 3); err != nil {
		t.Fatalf("add item again failed: %v", err)
	}

	snapshot, err := svc.Snapshot(1)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(snapshot.Items) != 1 {
		t.Fatalf("cart lines want 1 got %d", len(snapshot.Items))
	}
	if snapshot.Items[0].Quantity != 5 {
		t.Fatalf("quantity should accumulate to 5, got %d", snapshot.Items[0].Quantity)
	}
}

func TestCartServiceAddItemValidation(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	inactive := createCartTestProduct(t, db, "retired", "20.00", false)

	if err := svc.AddItem(1, inactive.ID, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product want ErrProductNotFound got %v", err)
	}
	if err := svc.AddItem(1, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown product want ErrProductNotFound got %v", err)
	}
	if err := svc.AddItem(1, inactive.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("zero quantity want ErrInvalidQuantity got %v", err)
	}
}

func TestCartServiceSetQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "mug", "10.00", true)

	if err := svc.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.SetQuantity(1, product.ID, 7); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	snapshot, _ := svc.Snapshot(1)
	if snapshot.Items[0].Quantity != 7 {
		t.Fatalf("quantity want 7 got %d", snapshot.Items[0].Quantity)
	}

	// 0 等价于移除
	if err := svc.SetQuantity(1, product.ID, 0); err != nil {
		t.Fatalf("set quantity to zero failed: %v", err)
	}
	snapshot, _ = svc.Snapshot(1)
	if len(snapshot.Items) != 0 {
		t.Fatalf("cart should be empty after zero quantity, got %d lines", len(snapshot.Items))
	}

	if err := svc.SetQuantity(1, product.ID, 3); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("set quantity for missing item want ErrCartItemNotFound got %v", err)
	}
	if err := svc.SetQuantity(1, product.ID, -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("negative quantity want ErrInvalidQuantity got %v", err)
	}
}

func TestCartServiceSnapshotExcludesInactive(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	active := createCartTestProduct(t, db, "active", "12.50", true)
	retired := createCartTestProduct(t, db, "soon-retired", "99.00", true)

	if err := svc.AddItem(1, active.ID, 2); err != nil {
		t.Fatalf("add active failed: %v", err)
	}
	if err := svc.AddItem(1, retired.ID, 1); err != nil {
		t.Fatalf("add retired failed: %v", err)
	}

	// 加购后商品下架
	if err := db.Model(&models.Product{}).Where("id = ?", retired.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	snapshot, err := svc.Snapshot(1)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(snapshot.Items) != 1 || snapshot.Items[0].ProductID != active.ID {
		t.Fatalf("snapshot should only include the active product")
	}
	if snapshot.ItemCount != 2 {
		t.Fatalf("item count want 2 got %d", snapshot.ItemCount)
	}
	if !snapshot.Subtotal.Decimal.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("subtotal want 25.00 got %s", snapshot.Subtotal.Decimal.String())
	}
	if !snapshot.Items[0].LineTotal.Decimal.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("line total want 25.00 got %s", snapshot.Items[0].LineTotal.Decimal.String())
	}
}

func TestCartServiceClear(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := createCartTestProduct(t, db, "first", "5.00", true)
	second := createCartTestProduct(t, db, "second", "6.00", true)

	if err := svc.AddItem(1, first.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.AddItem(1, second.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := svc.Clear(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	snapshot, _ := svc.Snapshot(1)
	if len(snapshot.Items) != 0 {
		t.Fatalf("cart should be empty after clear")
	}
}
