package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/openmart/openmart/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Slug: slug, Name: slug, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, categoryID uint, slug string, price string, stock int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:    categoryID,
		Slug:          slug,
		Name:          slug,
		Price:         models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		StockQuantity: stock,
		IsActive:      active,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product %s failed: %v", slug, err)
	}
	return product
}

func TestProductRepositoryDecrementStock(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	category := createTestCategory(t, db, "stock-category")
	product := createTestProduct(t, db, category.ID, "stock-product", "10.00", 5, true)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	// 剩余 2 件，再扣 3 件不应命中任何行
	affected, err = repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement stock beyond limit failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement beyond stock affected want 0 got %d", affected)
	}

	reloaded, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 2 {
		t.Fatalf("stock quantity want 2 got %d", reloaded.StockQuantity)
	}

	affected, err = repo.RestoreStock(product.ID, 3)
	if err != nil {
		t.Fatalf("restore stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("restore affected want 1 got %d", affected)
	}
	reloaded, _ = repo.GetByID(product.ID)
	if reloaded.StockQuantity != 5 {
		t.Fatalf("stock quantity after restore want 5 got %d", reloaded.StockQuantity)
	}
}

func TestProductRepositoryListFilters(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	electronics := createTestCategory(t, db, "electronics")
	lifestyle := createTestCategory(t, db, "lifestyle")

	createTestProduct(t, db, electronics.ID, "cheap-earbuds", "19.90", 10, true)
	expensive := createTestProduct(t, db, electronics.ID, "flagship-phone", "899.00", 3, true)
	expensive.IsFeatured = true
	if err := db.Save(expensive).Error; err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	createTestProduct(t, db, lifestyle.ID, "ceramic-mug", "12.50", 50, true)
	createTestProduct(t, db, lifestyle.ID, "retired-lamp", "30.00", 0, false)

	// 仅上架商品
	rows, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 20, OnlyActive: true})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("active list want 3 got total=%d len=%d", total, len(rows))
	}

	// 按分类
	_, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 20, CategoryID: electronics.ID, OnlyActive: true})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("category list want 2 got %d", total)
	}

	// 推荐商品
	rows, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 20, Featured: true, OnlyActive: true})
	if err != nil {
		t.Fatalf("list featured failed: %v", err)
	}
	if total != 1 || rows[0].Slug != "flagship-phone" {
		t.Fatalf("featured list want flagship-phone got total=%d", total)
	}

	// 价格区间
	minPrice := decimal.RequireFromString("15.00")
	maxPrice := decimal.RequireFromString("100.00")
	rows, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 20, MinPrice: &minPrice, MaxPrice: &maxPrice, OnlyActive: true})
	if err != nil {
		t.Fatalf("list by price range failed: %v", err)
	}
	if total != 1 || rows[0].Slug != "cheap-earbuds" {
		t.Fatalf("price range list want cheap-earbuds got total=%d", total)
	}

	// 搜索
	_, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 20, Search: "mug", OnlyActive: true})
	if err != nil {
		t.Fatalf("list by search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("search list want 1 got %d", total)
	}

	// 不限上架状态（后台视角）
	_, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if total != 4 {
		t.Fatalf("all list want 4 got %d", total)
	}
}

func TestProductRepositorySearchMatchesTags(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	category := createTestCategory(t, db, "tag-category")

	tagged := createTestProduct(t, db, category.ID, "earbuds-pro", "59.00", 10, true)
	tagged.Tags = models.StringArray{"wireless", "noise-cancelling"}
	if err := db.Save(tagged).Error; err != nil {
		t.Fatalf("update product tags failed: %v", err)
	}
	createTestProduct(t, db, category.ID, "plain-cable", "9.90", 10, true)

	// 命中仅出现在 tags 中的关键词
	rows, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 20, Search: "wireless", OnlyActive: true})
	if err != nil {
		t.Fatalf("search by tag failed: %v", err)
	}
	if total != 1 || rows[0].Slug != "earbuds-pro" {
		t.Fatalf("tag search want earbuds-pro got total=%d", total)
	}

	// 大小写不敏感
	_, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 20, Search: "WIRELESS", OnlyActive: true})
	if err != nil {
		t.Fatalf("uppercase tag search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("uppercase tag search want 1 got %d", total)
	}
}

func TestProductRepositoryCountBySlug(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	category := createTestCategory(t, db, "slug-category")
	product := createTestProduct(t, db, category.ID, "unique-slug", "10.00", 1, true)

	count, err := repo.CountBySlug("unique-slug", 0)
	if err != nil {
		t.Fatalf("count by slug failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	count, err = repo.CountBySlug("unique-slug", product.ID)
	if err != nil {
		t.Fatalf("count by slug with exclusion failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count with exclusion want 0 got %d", count)
	}
}
