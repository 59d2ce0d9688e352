//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/openmart/openmart/internal/constants"
	"github.com/openmart/openmart/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.Product{},
		&models.Category{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchAndStock(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	category := &models.Category{
		Slug:     "pg-category",
		Name:     "Postgres Category",
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	productRepo := NewProductRepository(db)
	product := &models.Product{
		CategoryID:    category.ID,
		Slug:          "pg-product-rocket",
		Name:          "Rocket Booster Pack",
		Description:   "booster bundle for model rockets",
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(99)),
		StockQuantity: 10,
		Tags:          models.StringArray{"thruster", "hobby"},
		IsActive:      true,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := productRepo.List(ProductListFilter{
		Page:       1,
		PageSize:   20,
		Search:     "booster",
		OnlyActive: true,
	})
	if err != nil {
		t.Fatalf("product list search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product list search want 1 got total=%d len=%d", total, len(rows))
	}

	// 仅出现在 json tags 列中的关键词也要可检索（lower 需要显式 CAST）
	_, total, err = productRepo.List(ProductListFilter{
		Page:       1,
		PageSize:   20,
		Search:     "thruster",
		OnlyActive: true,
	})
	if err != nil {
		t.Fatalf("product list tag search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("product list tag search want 1 got %d", total)
	}

	affected, err := productRepo.DecrementStock(product.ID, 4)
	if err != nil {
		t.Fatalf("decrement stock failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement stock affected want 1 got %d", affected)
	}
	affected, err = productRepo.DecrementStock(product.ID, 100)
	if err != nil {
		t.Fatalf("decrement stock over limit failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement beyond stock should not match any row, affected=%d", affected)
	}

	reloaded, err := productRepo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 6 {
		t.Fatalf("stock quantity want 6 got %d", reloaded.StockQuantity)
	}
}

func TestPostgresSalesStats(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewOrderRepository(db)

	orders := []models.Order{
		{
			OrderNumber:   "PG-ORDER-001",
			UserID:        1,
			Status:        constants.OrderStatusConfirmed,
			PaymentStatus: constants.PaymentStatusPaid,
			PaymentMethod: constants.PaymentMethodCard,
			TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
			FinalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
		},
		{
			OrderNumber:   "PG-ORDER-002",
			UserID:        2,
			Status:        constants.OrderStatusDelivered,
			PaymentStatus: constants.PaymentStatusPaid,
			PaymentMethod: constants.PaymentMethodUPI,
			TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
			FinalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(80)),
		},
		{
			OrderNumber:   "PG-ORDER-003",
			UserID:        1,
			Status:        constants.OrderStatusCancelled,
			PaymentStatus: constants.PaymentStatusPending,
			PaymentMethod: constants.PaymentMethodCOD,
			TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(999)),
			FinalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(999)),
		},
	}
	for i := range orders {
		if err := db.Create(&orders[i]).Error; err != nil {
			t.Fatalf("create order %s failed: %v", orders[i].OrderNumber, err)
		}
	}

	stats, err := repo.SalesStats()
	if err != nil {
		t.Fatalf("sales stats failed: %v", err)
	}
	if stats.TotalOrders != 2 {
		t.Fatalf("total orders want 2 got %d", stats.TotalOrders)
	}
	if !stats.TotalSales.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("total sales want 200 got %s", stats.TotalSales.Decimal.String())
	}
	if stats.TotalCustomers != 2 {
		t.Fatalf("total customers want 2 got %d", stats.TotalCustomers)
	}
}
